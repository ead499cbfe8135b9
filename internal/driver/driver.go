// Package driver covers the driver-side screens: picking a route to run,
// confirming it, and walking its stop list before starting on the map.
package driver

import (
	"errors"
	"fmt"

	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/category"
	"transit-cnmi/internal/nav"
	"transit-cnmi/internal/transit"
)

var (
	ErrUnknownRoute = errors.New("unknown route")
	ErrUnknownStop  = errors.New("unknown stop")
	ErrNotPending   = errors.New("no route awaiting confirmation")
)

// Route params passed between the driver screens.
const (
	ParamRouteID          = "routeId"
	ParamRouteName        = "routeName"
	ParamRouteDescription = "routeDescription"
	ParamMode             = "mode"
)

type Picker struct {
	cat *catalog.Catalog

	Query    string
	Category string
	pending  *transit.Route
}

func NewPicker(cat *catalog.Catalog) *Picker {
	return &Picker{cat: cat, Category: category.All}
}

// Visible lists the routes matching the current query and category chip.
func (p *Picker) Visible() []transit.Route {
	return category.SearchRoutes(p.cat.Routes, p.Query, p.Category)
}

// Choose opens the confirmation dialog for route id.
func (p *Picker) Choose(id string) error {
	r, ok := p.cat.Route(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoute, id)
	}
	p.pending = &r
	return nil
}

func (p *Picker) Pending() (transit.Route, bool) {
	if p.pending == nil {
		return transit.Route{}, false
	}
	return *p.pending, true
}

func (p *Picker) Cancel() { p.pending = nil }

// Confirm closes the dialog and returns the stop list screen for the route.
func (p *Picker) Confirm() (nav.Target, error) {
	if p.pending == nil {
		return nav.Target{}, ErrNotPending
	}
	r := *p.pending
	p.pending = nil
	return nav.Target{Screen: nav.Stops, Params: routeParams(r)}, nil
}

func routeParams(r transit.Route) map[string]string {
	return map[string]string{
		ParamRouteID:          r.ID,
		ParamRouteName:        r.Name,
		ParamRouteDescription: r.Description,
	}
}

// StopList is the stops screen for one route.
type StopList struct {
	cat      *catalog.Catalog
	route    transit.Route
	selected string
}

// DefaultRouteID is shown when the stops screen opens without params.
const DefaultRouteID = "16"

// OpenStops builds the stop list from navigation params, falling back to
// the default route when they are missing.
func OpenStops(cat *catalog.Catalog, params map[string]string) (*StopList, error) {
	id := params[ParamRouteID]
	if id == "" {
		id = DefaultRouteID
	}
	r, ok := cat.Route(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoute, id)
	}
	return &StopList{cat: cat, route: r}, nil
}

func (s *StopList) Route() transit.Route  { return s.route }
func (s *StopList) Stops() []transit.Stop { return s.cat.Stops }
func (s *StopList) Selected() string      { return s.selected }

func (s *StopList) Select(id string) error {
	if _, ok := s.cat.Stop(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, id)
	}
	s.selected = id
	return nil
}

// Start opens the map in driver mode for this route.
func (s *StopList) Start() nav.Target {
	params := routeParams(s.route)
	params[ParamMode] = "driver"
	return nav.Target{Screen: nav.Map, Params: params}
}

// StatusLabel is the badge text for a stop.
func StatusLabel(st transit.StopStatus) string {
	if st == transit.StopActive {
		return "Current Stop"
	}
	return "Upcoming"
}
