package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapOffset(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		height float64
		want   float64
	}{
		{"hidden", SheetHidden, 800, 0},
		{"collapsed", SheetCollapsed, 800, 120},
		{"expanded", SheetExpanded, 800, 480},
		{"past end", 2, 800, 0},
		{"no screen", SheetExpanded, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DefaultSnapPoints.Offset(tc.index, tc.height), 1e-9)
		})
	}
}

func TestParseSnapPoints(t *testing.T) {
	p, err := ParseSnapPoints("15%, 60%")
	require.NoError(t, err)
	assert.Equal(t, SnapPoints{15, 60}, p)

	for _, bad := range []string{"", "abc", "60%,15%", "0%", "120%", "20%,20%"} {
		_, err := ParseSnapPoints(bad)
		assert.Error(t, err, bad)
	}
}
