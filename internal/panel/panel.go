// Package panel holds the map screen's selection state machine: search text,
// chosen destination, tracked route, and the bottom sheet position that
// follows from them.
package panel

import (
	"errors"
	"fmt"

	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/search"
	"transit-cnmi/internal/transit"
)

// State is the map panel's selection stage.
type State int

const (
	Idle State = iota
	DestinationChosen
	Tracking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DestinationChosen:
		return "destination_chosen"
	case Tracking:
		return "tracking"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	for _, c := range []State{Idle, DestinationChosen, Tracking} {
		if c.String() == string(b) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown panel state %q", b)
}

// Event names the user action that drove a transition.
type Event string

const (
	EventSearch            Event = "search"
	EventSelectDestination Event = "select_destination"
	EventSelectRoute       Event = "select_route"
	EventClear             Event = "clear"
)

var (
	ErrInvalidTransition  = errors.New("invalid panel transition")
	ErrUnknownDestination = errors.New("unknown destination")
	ErrUnknownRoute       = errors.New("unknown route option")
)

// Snapshot is the view model the map screen renders.
type Snapshot struct {
	State               State                 `json:"state"`
	Query               string                `json:"query"`
	ShowResults         bool                  `json:"showResults"`
	Results             []transit.Destination `json:"results"`
	SelectedDestination string                `json:"selectedDestination,omitempty"`
	SelectedRoute       string                `json:"selectedRoute,omitempty"`
	TrackingBus         string                `json:"trackingBus,omitempty"`
	RouteOptions        []transit.RouteOption `json:"routeOptions,omitempty"`
	SheetIndex          int                   `json:"sheetIndex"`
}

// Transition is passed to listeners after every accepted event.
type Transition struct {
	From     State
	To       State
	Event    Event
	Snapshot Snapshot
}

// Listener observes transitions. It runs synchronously inside the event call.
type Listener func(Transition)

// Machine is owned by a single caller; it does no locking of its own.
type Machine struct {
	cat   *catalog.Catalog
	limit int

	state       State
	query       string
	showResults bool
	destination string
	route       string
	trackingBus string
	sheet       int

	listeners []Listener
}

// New returns an Idle machine over cat with the search limit clamped to 5..8.
func New(cat *catalog.Catalog, searchLimit int) *Machine {
	return &Machine{
		cat:   cat,
		limit: search.ClampLimit(searchLimit),
		sheet: SheetHidden,
	}
}

// OnTransition registers l to be called after every accepted event.
func (m *Machine) OnTransition(l Listener) {
	m.listeners = append(m.listeners, l)
}

// State returns the current stage.
func (m *Machine) State() State { return m.state }

// Search updates the query and overlay visibility without changing state.
func (m *Machine) Search(text string) Snapshot {
	from := m.state
	m.query = text
	m.showResults = search.Visible(text)
	return m.emit(from, EventSearch)
}

// SelectDestination picks a destination by name and expands the sheet to
// show its route options. From Tracking the tracked route is dropped.
func (m *Machine) SelectDestination(name string) (Snapshot, error) {
	if _, ok := m.cat.DestinationByName(name); !ok {
		return m.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownDestination, name)
	}
	from := m.state
	m.destination = name
	m.query = name
	m.showResults = false
	m.route = ""
	m.trackingBus = ""
	m.state = DestinationChosen
	m.sheet = SheetExpanded
	return m.emit(from, EventSelectDestination), nil
}

// SelectRoute starts tracking a route option and collapses the sheet.
func (m *Machine) SelectRoute(id string) (Snapshot, error) {
	if m.state == Idle {
		return m.Snapshot(), fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, EventSelectRoute, m.state)
	}
	if _, ok := m.cat.RouteOption(id); !ok {
		return m.Snapshot(), fmt.Errorf("%w: %q", ErrUnknownRoute, id)
	}
	from := m.state
	m.route = id
	m.trackingBus = id
	m.state = Tracking
	m.sheet = SheetCollapsed
	return m.emit(from, EventSelectRoute), nil
}

// Clear resets every selection field and returns to Idle.
func (m *Machine) Clear() Snapshot {
	from := m.state
	m.state = Idle
	m.query = ""
	m.showResults = false
	m.destination = ""
	m.route = ""
	m.trackingBus = ""
	m.sheet = SheetHidden
	return m.emit(from, EventClear)
}

// Snapshot returns the current view model. Results are filled only while
// the overlay is visible; route options only outside Idle.
func (m *Machine) Snapshot() Snapshot {
	s := Snapshot{
		State:               m.state,
		Query:               m.query,
		ShowResults:         m.showResults,
		SelectedDestination: m.destination,
		SelectedRoute:       m.route,
		TrackingBus:         m.trackingBus,
		SheetIndex:          m.sheet,
	}
	if m.showResults {
		s.Results = search.Destinations(m.cat.Destinations, m.query, m.limit)
	}
	if m.state != Idle {
		s.RouteOptions = m.cat.RouteOptions
	}
	return s
}

func (m *Machine) emit(from State, ev Event) Snapshot {
	snap := m.Snapshot()
	for _, l := range m.listeners {
		l(Transition{From: from, To: m.state, Event: ev, Snapshot: snap})
	}
	return snap
}
