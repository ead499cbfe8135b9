package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"transit-cnmi/internal/auth"
	"transit-cnmi/internal/catalog"
	"transit-cnmi/internal/category"
	"transit-cnmi/internal/driver"
	mmetrics "transit-cnmi/internal/metrics"
	"transit-cnmi/internal/panel"
	"transit-cnmi/internal/search"
	"transit-cnmi/internal/session"
	"transit-cnmi/internal/settings"
	"transit-cnmi/internal/taxi"
	"transit-cnmi/internal/theme"
	"transit-cnmi/internal/transit"
)

// Handler serves the screens' view models to the thin client.
type Handler struct {
	cat         *catalog.Catalog
	sessions    *session.Manager
	theme       *theme.Settings
	auth        *auth.Simulator
	snapPoints  panel.SnapPoints
	searchLimit int
	metrics     *mmetrics.Collector
}

type Deps struct {
	Catalog     *catalog.Catalog
	Sessions    *session.Manager
	Theme       *theme.Settings
	Auth        *auth.Simulator
	SnapPoints  panel.SnapPoints
	SearchLimit int
	Metrics     *mmetrics.Collector // optional
}

func NewHandler(d Deps) *Handler {
	if d.SnapPoints == nil {
		d.SnapPoints = panel.DefaultSnapPoints
	}
	return &Handler{
		cat:         d.Catalog,
		sessions:    d.Sessions,
		theme:       d.Theme,
		auth:        d.Auth,
		snapPoints:  d.SnapPoints,
		searchLimit: search.ClampLimit(d.SearchLimit),
		metrics:     d.Metrics,
	}
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = map[string]interface{}{"internal": err.Error()}
	}
	writeJSON(w, status, resp)
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, panel.ErrInvalidTransition),
		errors.Is(err, taxi.ErrNoModal),
		errors.Is(err, driver.ErrNotPending):
		return http.StatusConflict
	case errors.Is(err, panel.ErrUnknownDestination),
		errors.Is(err, panel.ErrUnknownRoute),
		errors.Is(err, driver.ErrUnknownRoute),
		errors.Is(err, driver.ErrUnknownStop),
		errors.Is(err, taxi.ErrUnknownTaxi),
		errors.Is(err, errUnknownQuickDestination),
		errors.Is(err, settings.ErrUnknownLanguage),
		errors.Is(err, theme.ErrInvalidPreference):
		return http.StatusBadRequest
	case errors.Is(err, taxi.ErrCallsUnsupported):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"themeLoaded": h.theme.Loaded(),
		"sessions":    h.sessions.Len(),
		"timestamp":   time.Now().UTC(),
	})
}

type DestinationsResponse struct {
	Query   string                `json:"query"`
	Visible bool                  `json:"visible"`
	Results []transit.Destination `json:"results"`
	Count   int                   `json:"count"`
}

// SearchDestinations handles GET /api/destinations?q=
func (h *Handler) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := search.Destinations(h.cat.Destinations, q, h.searchLimit)
	if results == nil {
		results = []transit.Destination{}
	}
	if h.metrics != nil {
		h.metrics.Searches.Inc()
		h.metrics.SearchResults.Observe(float64(len(results)))
	}
	writeJSON(w, http.StatusOK, DestinationsResponse{
		Query:   q,
		Visible: search.Visible(q),
		Results: results,
		Count:   len(results),
	})
}

type RoutesResponse struct {
	Category   string             `json:"category"`
	Categories []transit.Category `json:"categories"`
	Routes     []transit.Route    `json:"routes"`
	Count      int                `json:"count"`
}

// ListRoutes handles GET /api/routes?category=&q=
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	cat := r.URL.Query().Get("category")
	if cat == "" {
		cat = category.All
	}
	routes := category.SearchRoutes(h.cat.Routes, r.URL.Query().Get("q"), cat)
	writeJSON(w, http.StatusOK, RoutesResponse{
		Category:   cat,
		Categories: h.cat.RouteCategories,
		Routes:     routes,
		Count:      len(routes),
	})
}

type GuideResponse struct {
	Category    string               `json:"category"`
	Categories  []transit.Category   `json:"categories"`
	Attractions []transit.Attraction `json:"attractions"`
}

// Guide handles GET /api/guide?category=
func (h *Handler) Guide(w http.ResponseWriter, r *http.Request) {
	cat := r.URL.Query().Get("category")
	if cat == "" {
		cat = category.All
	}
	writeJSON(w, http.StatusOK, GuideResponse{
		Category:    cat,
		Categories:  h.cat.GuideCategories,
		Attractions: category.Attractions(h.cat.Attractions, cat),
	})
}

type StopView struct {
	transit.Stop
	StatusLabel string `json:"statusLabel"`
}

type StopsResponse struct {
	Route transit.Route `json:"route"`
	Stops []StopView    `json:"stops"`
}

// ListStops handles GET /api/stops?routeId=
func (h *Handler) ListStops(w http.ResponseWriter, r *http.Request) {
	params := map[string]string{driver.ParamRouteID: r.URL.Query().Get("routeId")}
	sl, err := driver.OpenStops(h.cat, params)
	if err != nil {
		writeError(w, statusFor(err), "Failed to open stop list", err)
		return
	}
	stops := sl.Stops()
	views := make([]StopView, len(stops))
	for i, s := range stops {
		views[i] = StopView{Stop: s, StatusLabel: driver.StatusLabel(s.Status)}
	}
	writeJSON(w, http.StatusOK, StopsResponse{Route: sl.Route(), Stops: views})
}

type TaxisResponse struct {
	Taxis             []transit.Taxi             `json:"taxis"`
	QuickDestinations []transit.QuickDestination `json:"quickDestinations"`
}

// ListTaxis handles GET /api/taxis
func (h *Handler) ListTaxis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TaxisResponse{Taxis: h.cat.Taxis, QuickDestinations: h.cat.QuickDestinations})
}

// list returns a handler that serves a static slice.
func list[T any](items []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"items": items, "count": len(items)})
	}
}

// screenHeight reads the optional ?screenHeight= used to size the sheet.
func screenHeight(r *http.Request) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get("screenHeight"), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
