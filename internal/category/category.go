// Package category narrows the static route and guide lists by the chip
// the user selected. The "all" chip, and any chip without a rule, keeps the
// list as is.
package category

import (
	"slices"
	"strings"

	"transit-cnmi/internal/transit"
)

const All = "all"

// Predicate reports whether an item belongs to a category.
type Predicate[T any] func(T) bool

// Rules maps category ids to predicates.
type Rules[T any] map[string]Predicate[T]

// Apply filters items by the rule registered for id, preserving order.
func (r Rules[T]) Apply(items []T, id string) []T {
	p, ok := r[id]
	if id == All || !ok {
		return items
	}
	return Filter(items, p)
}

func Filter[T any](items []T, p Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if p(it) {
			out = append(out, it)
		}
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// RouteRules are the route screen chips. Tag fields win; otherwise the name
// or description is checked.
var RouteRules = Rules[transit.Route]{
	"express": func(r transit.Route) bool { return r.Express || containsFold(r.Name, "express") },
	"local":   func(r transit.Route) bool { return r.Local || containsFold(r.Name, "local") },
	"airport": func(r transit.Route) bool { return r.Airport || containsFold(r.Description, "airport") },
}

func Routes(routes []transit.Route, id string) []transit.Route {
	return RouteRules.Apply(routes, id)
}

// MatchRoute reports whether a route's name or description contains the
// trimmed query. A blank query matches every route.
func MatchRoute(r transit.Route, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}
	return containsFold(r.Name, q) || containsFold(r.Description, q)
}

// SearchRoutes combines the text query and the category chip.
func SearchRoutes(routes []transit.Route, query, id string) []transit.Route {
	return Filter(Routes(routes, id), func(r transit.Route) bool { return MatchRoute(r, query) })
}

// Attractions keeps the attractions tagged with the guide category id.
func Attractions(items []transit.Attraction, id string) []transit.Attraction {
	if id == All {
		return items
	}
	return Filter(items, func(a transit.Attraction) bool { return slices.Contains(a.Tags, id) })
}
