package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"transit-cnmi/internal/transit"
)

// defaultYAML is the built-in reference data shipped with the binary.
//
//go:embed catalog.yaml
var defaultYAML []byte

// Catalog holds the static, read-only lists every screen renders from.
type Catalog struct {
	Destinations      []transit.Destination      `yaml:"destinations"`
	RouteOptions      []transit.RouteOption      `yaml:"routeOptions"`
	Arrivals          []transit.Arrival          `yaml:"arrivals"`
	Buses             []transit.BusLocation      `yaml:"buses"`
	Taxis             []transit.Taxi             `yaml:"taxis"`
	QuickDestinations []transit.QuickDestination `yaml:"quickDestinations"`
	Routes            []transit.Route            `yaml:"routes"`
	RouteCategories   []transit.Category         `yaml:"routeCategories"`
	Stops             []transit.Stop             `yaml:"stops"`
	GuideCategories   []transit.Category         `yaml:"guideCategories"`
	Attractions       []transit.Attraction       `yaml:"attractions"`
	Languages         []transit.Language         `yaml:"languages"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// Load reads a catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids are present and unique per list and that every route
// option points at a known destination.
func (c *Catalog) Validate() error {
	if len(c.Destinations) == 0 {
		return fmt.Errorf("catalog has no destinations")
	}
	checks := []struct {
		list string
		ids  []string
	}{
		{"destinations", ids(c.Destinations, func(d transit.Destination) string { return d.ID })},
		{"routeOptions", ids(c.RouteOptions, func(r transit.RouteOption) string { return r.ID })},
		{"arrivals", ids(c.Arrivals, func(a transit.Arrival) string { return a.ID })},
		{"buses", ids(c.Buses, func(b transit.BusLocation) string { return b.ID })},
		{"taxis", ids(c.Taxis, func(t transit.Taxi) string { return t.ID })},
		{"routes", ids(c.Routes, func(r transit.Route) string { return r.ID })},
		{"routeCategories", ids(c.RouteCategories, func(k transit.Category) string { return k.ID })},
		{"stops", ids(c.Stops, func(s transit.Stop) string { return s.ID })},
		{"guideCategories", ids(c.GuideCategories, func(k transit.Category) string { return k.ID })},
		{"attractions", ids(c.Attractions, func(a transit.Attraction) string { return a.ID })},
		{"languages", ids(c.Languages, func(l transit.Language) string { return l.ID })},
	}
	for _, ch := range checks {
		seen := make(map[string]bool, len(ch.ids))
		for i, id := range ch.ids {
			if id == "" {
				return fmt.Errorf("%s[%d]: empty id", ch.list, i)
			}
			if seen[id] {
				return fmt.Errorf("%s: duplicate id %q", ch.list, id)
			}
			seen[id] = true
		}
	}
	for _, ro := range c.RouteOptions {
		if _, ok := c.DestinationByName(ro.Destination); !ok {
			return fmt.Errorf("routeOptions %q: unknown destination %q", ro.ID, ro.Destination)
		}
	}
	return nil
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}

func (c *Catalog) DestinationByName(name string) (transit.Destination, bool) {
	for _, d := range c.Destinations {
		if d.Name == name {
			return d, true
		}
	}
	return transit.Destination{}, false
}

func (c *Catalog) RouteOption(id string) (transit.RouteOption, bool) {
	for _, r := range c.RouteOptions {
		if r.ID == id {
			return r, true
		}
	}
	return transit.RouteOption{}, false
}

func (c *Catalog) Route(id string) (transit.Route, bool) {
	for _, r := range c.Routes {
		if r.ID == id {
			return r, true
		}
	}
	return transit.Route{}, false
}

func (c *Catalog) Stop(id string) (transit.Stop, bool) {
	for _, s := range c.Stops {
		if s.ID == id {
			return s, true
		}
	}
	return transit.Stop{}, false
}

func (c *Catalog) Taxi(id string) (transit.Taxi, bool) {
	for _, t := range c.Taxis {
		if t.ID == id {
			return t, true
		}
	}
	return transit.Taxi{}, false
}

func (c *Catalog) Language(id string) (transit.Language, bool) {
	for _, l := range c.Languages {
		if l.ID == id {
			return l, true
		}
	}
	return transit.Language{}, false
}
