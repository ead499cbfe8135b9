// Package theme owns the user's light/dark display preference.
//
// A Settings value is created once per process and handed to whatever needs
// to read or change the theme. It loads the stored preference at startup,
// resolves "system" against the OS color scheme, and persists changes
// through a store.KV. Persist failures are returned to the caller; the
// in-memory preference is updated either way.
package theme

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"transit-cnmi/internal/store"
)

// StorageKey is the key the preference is stored under.
const StorageKey = "theme-preference"

type Preference string

const (
	System Preference = "system"
	Light  Preference = "light"
	Dark   Preference = "dark"
)

var ErrInvalidPreference = errors.New("invalid theme preference")

func ParsePreference(s string) (Preference, error) {
	switch p := Preference(s); p {
	case System, Light, Dark:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPreference, s)
}

// SchemeSource reports the OS color scheme, Light or Dark. Anything else
// (including "") is treated as Light.
type SchemeSource func() Preference

// FixedScheme returns a SchemeSource that always reports p.
func FixedScheme(p Preference) SchemeSource {
	return func() Preference { return p }
}

type Change struct {
	Preference Preference `json:"preference"`
	Resolved   Preference `json:"resolved"`
}

type Settings struct {
	kv     store.KV
	system SchemeSource

	// setMu serializes writers across the memory update and the store
	// write so both end up holding the same last value.
	setMu sync.Mutex

	mu        sync.RWMutex
	pref      Preference
	loaded    bool
	listeners []func(Change)
}

func NewSettings(kv store.KV, system SchemeSource) *Settings {
	if system == nil {
		system = FixedScheme(Light)
	}
	return &Settings{kv: kv, system: system, pref: System}
}

// Load reads the stored preference. Missing, invalid or unreadable values
// leave the default in place; read failures are logged, not returned.
func (s *Settings) Load(ctx context.Context) {
	pref := System
	v, err := s.kv.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		log.Printf("theme: failed to load preference: %v", err)
	default:
		if p, perr := ParsePreference(v); perr == nil {
			pref = p
		} else {
			log.Printf("theme: ignoring stored value %q", v)
		}
	}
	s.mu.Lock()
	s.pref = pref
	s.loaded = true
	s.mu.Unlock()
}

func (s *Settings) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Settings) Preference() Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pref
}

// Resolved is the theme actually shown: Light or Dark.
func (s *Settings) Resolved() Preference {
	return s.resolve(s.Preference())
}

func (s *Settings) resolve(p Preference) Preference {
	if p != System {
		return p
	}
	if s.system() == Dark {
		return Dark
	}
	return Light
}

// OnChange registers fn to run after every in-memory preference change.
func (s *Settings) OnChange(fn func(Change)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Set switches to p and persists it. The returned error reports only the
// persist step; the new preference is in effect regardless.
func (s *Settings) Set(ctx context.Context, p Preference) error {
	if _, err := ParsePreference(string(p)); err != nil {
		return err
	}
	s.setMu.Lock()
	defer s.setMu.Unlock()
	return s.setLocked(ctx, p)
}

func (s *Settings) setLocked(ctx context.Context, p Preference) error {
	s.mu.Lock()
	s.pref = p
	listeners := append([]func(Change){}, s.listeners...)
	s.mu.Unlock()

	ch := Change{Preference: p, Resolved: s.resolve(p)}
	for _, fn := range listeners {
		fn(ch)
	}
	if err := s.kv.Set(ctx, StorageKey, string(p)); err != nil {
		return fmt.Errorf("save theme preference: %w", err)
	}
	return nil
}

// Toggle flips the resolved theme and stores it as an explicit choice.
func (s *Settings) Toggle(ctx context.Context) (Preference, error) {
	s.setMu.Lock()
	defer s.setMu.Unlock()
	next := Dark
	if s.Resolved() == Dark {
		next = Light
	}
	return next, s.setLocked(ctx, next)
}
