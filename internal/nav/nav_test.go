package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, name := range []string{"map", "guide", "routes", "taxi", "settings", "login", "signup", "stops", "driver-route", "language-selection"} {
		s, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, Screen(name), s)
	}
	_, err := Parse("payments")
	assert.ErrorIs(t, err, ErrUnknownScreen)
}

func TestTabs(t *testing.T) {
	assert.Equal(t, []Screen{Map, Guide, Routes, Taxi, Settings}, Tabs())
	assert.True(t, Map.IsTab())
	assert.False(t, Login.IsTab())
	assert.False(t, Stops.IsTab())
}

func TestStart(t *testing.T) {
	assert.Equal(t, Target{Screen: Login, Replace: true}, Start())
}
