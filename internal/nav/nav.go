package nav

import (
	"errors"
	"fmt"
)

type Screen string

// Tab screens.
const (
	Map      Screen = "map"
	Guide    Screen = "guide"
	Routes   Screen = "routes"
	Taxi     Screen = "taxi"
	Settings Screen = "settings"
)

// Auth stack.
const (
	Login  Screen = "login"
	Signup Screen = "signup"
)

// Stacked screens pushed from a tab.
const (
	DriverRoute       Screen = "driver-route"
	Stops             Screen = "stops"
	LanguageSelection Screen = "language-selection"
)

var ErrUnknownScreen = errors.New("unknown screen")

var (
	tabs   = []Screen{Map, Guide, Routes, Taxi, Settings}
	auth   = []Screen{Login, Signup}
	pushed = []Screen{DriverRoute, Stops, LanguageSelection}
)

func Tabs() []Screen { return append([]Screen(nil), tabs...) }

func Parse(name string) (Screen, error) {
	for _, group := range [][]Screen{tabs, auth, pushed} {
		for _, s := range group {
			if string(s) == name {
				return s, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScreen, name)
}

func (s Screen) IsTab() bool {
	for _, t := range tabs {
		if t == s {
			return true
		}
	}
	return false
}

// Target is a navigation request: a screen plus plain string params.
// Replace means the current stack is discarded (as after login).
type Target struct {
	Screen  Screen            `json:"screen"`
	Params  map[string]string `json:"params,omitempty"`
	Replace bool              `json:"replace,omitempty"`
}

func To(s Screen) Target { return Target{Screen: s} }

// Start is where a fresh launch lands until real authentication exists.
func Start() Target { return Target{Screen: Login, Replace: true} }
