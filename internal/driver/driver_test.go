package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/nav"
	"transit-cnmi/internal/transit"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestPickerConfirmFlow(t *testing.T) {
	p := NewPicker(loadCatalog(t))
	assert.Len(t, p.Visible(), 4)

	p.Category = "express"
	require.Len(t, p.Visible(), 1)

	_, err := p.Confirm()
	assert.ErrorIs(t, err, ErrNotPending)

	require.NoError(t, p.Choose("12"))
	r, ok := p.Pending()
	require.True(t, ok)
	assert.Equal(t, "Route 12 Express", r.Name)

	target, err := p.Confirm()
	require.NoError(t, err)
	assert.Equal(t, nav.Stops, target.Screen)
	assert.Equal(t, map[string]string{
		ParamRouteID:          "12",
		ParamRouteName:        "Route 12 Express",
		ParamRouteDescription: "Airport → Garapan → Capitol Hill",
	}, target.Params)

	_, ok = p.Pending()
	assert.False(t, ok)
}

func TestPickerCancelAndUnknown(t *testing.T) {
	p := NewPicker(loadCatalog(t))
	assert.ErrorIs(t, p.Choose("99"), ErrUnknownRoute)

	require.NoError(t, p.Choose("8"))
	p.Cancel()
	_, err := p.Confirm()
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestStopList(t *testing.T) {
	cat := loadCatalog(t)

	s, err := OpenStops(cat, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRouteID, s.Route().ID)
	assert.Len(t, s.Stops(), 4)

	require.NoError(t, s.Select("2"))
	assert.Equal(t, "2", s.Selected())
	assert.ErrorIs(t, s.Select("9"), ErrUnknownStop)

	target := s.Start()
	assert.Equal(t, nav.Map, target.Screen)
	assert.Equal(t, "driver", target.Params[ParamMode])
	assert.Equal(t, "16", target.Params[ParamRouteID])

	_, err = OpenStops(cat, map[string]string{ParamRouteID: "nope"})
	assert.ErrorIs(t, err, ErrUnknownRoute)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Current Stop", StatusLabel(transit.StopActive))
	assert.Equal(t, "Upcoming", StatusLabel(transit.StopPending))
}
