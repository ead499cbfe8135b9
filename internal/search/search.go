package search

import (
	"strings"

	"transit-cnmi/internal/transit"
)

// Result caps allowed for the destination overlay.
const (
	MinLimit     = 5
	MaxLimit     = 8
	DefaultLimit = MinLimit
)

// ClampLimit forces n into [MinLimit, MaxLimit]; non-positive means default.
func ClampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n < MinLimit:
		return MinLimit
	case n > MaxLimit:
		return MaxLimit
	}
	return n
}

// Visible reports whether the results overlay is shown for query.
func Visible(query string) bool { return len(query) > 0 }

// Destinations returns the destinations whose name contains query, ignoring
// case, in list order and at most limit long. An empty query matches nothing.
// The query is used as typed: no trimming, ranking, or accent folding.
func Destinations(list []transit.Destination, query string, limit int) []transit.Destination {
	if !Visible(query) {
		return nil
	}
	limit = ClampLimit(limit)
	q := strings.ToLower(query)
	out := make([]transit.Destination, 0, limit)
	for _, d := range list {
		if !strings.Contains(strings.ToLower(d.Name), q) {
			continue
		}
		out = append(out, d)
		if len(out) == limit {
			break
		}
	}
	return out
}
