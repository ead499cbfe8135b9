package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSearch(t *testing.T) {
	out, err := run(t, "search", "gara")
	require.NoError(t, err)
	assert.Contains(t, out, "Garapan Tourist District")

	out, err = run(t, "search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No destinations match "zzz"`)

	_, err = run(t, "search")
	assert.Error(t, err)
}

func TestRoutesAndStops(t *testing.T) {
	out, err := run(t, "routes", "--category", "express")
	require.NoError(t, err)
	assert.Contains(t, out, "Route 12 Express")
	assert.NotContains(t, out, "Route 4 Local")

	out, err = run(t, "stops")
	require.NoError(t, err)
	assert.Contains(t, out, "Route 16 Northbound")
	assert.Contains(t, out, "Current Stop")

	_, err = run(t, "stops", "--route", "99")
	assert.Error(t, err)
}

func TestThemePersists(t *testing.T) {
	db := filepath.Join(t.TempDir(), "prefs.db")

	out, err := run(t, "--dsn", db, "theme", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "preference: system")

	_, err = run(t, "--dsn", db, "theme", "set", "dark")
	require.NoError(t, err)

	out, err = run(t, "--dsn", db, "theme", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "preference: dark")

	out, err = run(t, "--dsn", db, "theme", "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "resolved: light")

	_, err = run(t, "--dsn", db, "theme", "set", "sepia")
	assert.Error(t, err)
}
