package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-cnmi/internal/catalog"
)

func TestDefaults(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	s := New(cat)

	assert.True(t, s.Notifications)
	assert.True(t, s.Location)
	assert.Equal(t, "en", s.Language())
	_, msg := s.Save()
	assert.Equal(t, "You have selected English", msg)
}

func TestSelectLanguage(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	s := New(cat)

	require.NoError(t, s.SelectLanguage("ch"))
	l, msg := s.Save()
	assert.Equal(t, "Chamoru", l.NativeName)
	assert.Equal(t, "You have selected Chamorro", msg)

	assert.ErrorIs(t, s.SelectLanguage("fr"), ErrUnknownLanguage)
	assert.Equal(t, "ch", s.Language())
}
