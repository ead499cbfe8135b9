package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Len(t, c.Destinations, 8)
	assert.Len(t, c.RouteOptions, 3)
	assert.Len(t, c.Routes, 4)
	assert.Len(t, c.Languages, 6)

	d, ok := c.DestinationByName("Garapan Tourist District")
	require.True(t, ok)
	assert.Equal(t, "2", d.ID)
	assert.Equal(t, "district", d.Category)

	ro, ok := c.RouteOption("1")
	require.True(t, ok)
	assert.Equal(t, "Route 16", ro.Route)

	_, ok = c.Taxi("99")
	assert.False(t, ok)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	doc := []byte(`
destinations:
  - {id: "1", name: "A"}
  - {id: "1", name: "B"}
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestParseRejectsEmptyID(t *testing.T) {
	doc := []byte(`
destinations:
  - {id: "", name: "A"}
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty id")
}

func TestParseRejectsDanglingRouteOption(t *testing.T) {
	doc := []byte(`
destinations:
  - {id: "1", name: "A"}
routeOptions:
  - {id: "1", route: "Route 1", destination: "Nowhere"}
`)
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown destination")
}

func TestParseRejectsEmptyCatalog(t *testing.T) {
	_, err := Parse([]byte(`languages: []`))
	require.Error(t, err)
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
destinations:
  - {id: "x", name: "Mount Tapochau", category: park}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Destinations, 1)
	assert.Equal(t, "Mount Tapochau", c.Destinations[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
