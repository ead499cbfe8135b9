package settings

import (
	"errors"
	"fmt"

	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/transit"
)

const DefaultLanguage = "en"

var ErrUnknownLanguage = errors.New("unknown language")

// Screen is the settings tab. Toggles and language are kept in memory only;
// the theme lives in theme.Settings.
type Screen struct {
	cat *catalog.Catalog

	Notifications bool
	Location      bool
	language      string
}

func New(cat *catalog.Catalog) *Screen {
	return &Screen{cat: cat, Notifications: true, Location: true, language: DefaultLanguage}
}

func (s *Screen) Language() string { return s.language }

func (s *Screen) SelectLanguage(id string) error {
	if _, ok := s.cat.Language(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, id)
	}
	s.language = id
	return nil
}

// Save confirms the language choice and returns the message shown to the user.
func (s *Screen) Save() (transit.Language, string) {
	l, _ := s.cat.Language(s.language)
	return l, fmt.Sprintf("You have selected %s", l.Name)
}
