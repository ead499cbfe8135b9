package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/transit"
)

func routeIDs(rs []transit.Route) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestRoutesByCategory(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	tests := []struct {
		id   string
		want []string
	}{
		{"all", []string{"16", "8", "12", "4"}},
		{"express", []string{"12"}},
		{"local", []string{"4"}},
		{"airport", []string{"16", "12"}},
		{"unknown", []string{"16", "8", "12", "4"}},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			assert.Equal(t, tc.want, routeIDs(Routes(cat.Routes, tc.id)))
		})
	}
}

func TestAllIsIdentity(t *testing.T) {
	lists := [][]transit.Route{
		{{ID: "a"}},
		{{ID: "a", Name: "Express"}, {ID: "b", Local: true}, {ID: "c"}},
	}
	for _, l := range lists {
		assert.Equal(t, l, Routes(l, All))
	}
}

func TestTagFieldsWin(t *testing.T) {
	routes := []transit.Route{
		{ID: "1", Name: "Route 1", Express: true},
		{ID: "2", Name: "Route 2"},
		{ID: "3", Name: "Route 3", Airport: true},
	}
	assert.Equal(t, []string{"1"}, routeIDs(Routes(routes, "express")))
	assert.Equal(t, []string{"3"}, routeIDs(Routes(routes, "airport")))
	assert.Empty(t, Routes(routes, "local"))
}

func TestSearchRoutes(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	assert.Equal(t, []string{"16", "8", "12", "4"}, routeIDs(SearchRoutes(cat.Routes, "  ", All)))
	assert.Equal(t, []string{"8", "12"}, routeIDs(SearchRoutes(cat.Routes, " capitol ", All)))
	assert.Equal(t, []string{"12"}, routeIDs(SearchRoutes(cat.Routes, "capitol", "express")))
	assert.Empty(t, SearchRoutes(cat.Routes, "tinian", All))
}

func TestAttractions(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)

	assert.Len(t, Attractions(cat.Attractions, All), 4)
	assert.Len(t, Attractions(cat.Attractions, "attractions"), 4)
	culture := Attractions(cat.Attractions, "culture")
	require.Len(t, culture, 2)
	assert.Equal(t, "American Memorial Park", culture[0].Name)
	assert.Empty(t, Attractions(cat.Attractions, "dining"))
}
