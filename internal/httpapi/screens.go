package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"transit-cnmi/internal/category"
	"transit-cnmi/internal/driver"
	"transit-cnmi/internal/nav"
	"transit-cnmi/internal/session"
	"transit-cnmi/internal/taxi"
	"transit-cnmi/internal/transit"
)

var errUnknownQuickDestination = errors.New("unknown quick destination")

// withScreens runs fn on the session's screens and writes its result.
func (h *Handler) withScreens(w http.ResponseWriter, r *http.Request, fn func(*session.Screens) (any, error)) {
	var out any
	err := h.sessions.With(chi.URLParam(r, "id"), func(s *session.Screens) error {
		v, err := fn(s)
		out = v
		return err
	})
	if err != nil {
		writeError(w, statusFor(err), "Screen update rejected", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// handoffDialer passes the dial intent back to the client, which owns the
// phone.
type handoffDialer struct{ url string }

func (d *handoffDialer) CanDial(context.Context, string) (bool, error) { return true, nil }

func (d *handoffDialer) Dial(_ context.Context, url string) error {
	d.url = url
	return nil
}

type TaxiView struct {
	Pickup      string        `json:"pickup"`
	Destination string        `json:"destination"`
	Selected    *transit.Taxi `json:"selected,omitempty"`
	Modal       taxi.Modal    `json:"modal"`
	Next        *nav.Target   `json:"next,omitempty"`
	Dial        string        `json:"dial,omitempty"`
}

func taxiView(p *taxi.Panel) TaxiView {
	v := TaxiView{Pickup: p.Pickup, Destination: p.Destination, Modal: p.Modal()}
	if t, ok := p.Selected(); ok {
		v.Selected = &t
	}
	return v
}

type TaxiTripRequest struct {
	Pickup           string `json:"pickup"`
	Destination      string `json:"destination"`
	QuickDestination string `json:"quickDestination,omitempty"`
}

type TaxiSelectRequest struct {
	ID string `json:"id"`
}

// GetTaxi handles GET /api/sessions/{id}/taxi
func (h *Handler) GetTaxi(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) { return taxiView(s.Taxi), nil })
}

// UpdateTaxiTrip handles PUT /api/sessions/{id}/taxi. A quick destination
// name overrides the typed destination.
func (h *Handler) UpdateTaxiTrip(w http.ResponseWriter, r *http.Request) {
	var req TaxiTripRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		var quick *transit.QuickDestination
		if req.QuickDestination != "" {
			for i := range h.cat.QuickDestinations {
				if h.cat.QuickDestinations[i].Name == req.QuickDestination {
					quick = &h.cat.QuickDestinations[i]
					break
				}
			}
			if quick == nil {
				return nil, fmt.Errorf("%w: %q", errUnknownQuickDestination, req.QuickDestination)
			}
		}
		s.Taxi.Pickup = req.Pickup
		s.Taxi.Destination = req.Destination
		if quick != nil {
			s.Taxi.UseQuickDestination(*quick)
		}
		return taxiView(s.Taxi), nil
	})
}

// SelectTaxi handles POST /api/sessions/{id}/taxi/select
func (h *Handler) SelectTaxi(w http.ResponseWriter, r *http.Request) {
	var req TaxiSelectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		if err := s.Taxi.SelectTaxi(req.ID); err != nil {
			return nil, err
		}
		return taxiView(s.Taxi), nil
	})
}

// RequestTaxi handles POST /api/sessions/{id}/taxi/request
func (h *Handler) RequestTaxi(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		s.Taxi.OpenRequest()
		return taxiView(s.Taxi), nil
	})
}

// AcknowledgeTaxi handles POST /api/sessions/{id}/taxi/ack
func (h *Handler) AcknowledgeTaxi(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		next, err := s.Taxi.Acknowledge()
		if err != nil {
			return nil, err
		}
		v := taxiView(s.Taxi)
		v.Next = &next
		return v, nil
	})
}

// OpenEmergency handles POST /api/sessions/{id}/taxi/emergency
func (h *Handler) OpenEmergency(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		s.Taxi.OpenEmergency()
		return taxiView(s.Taxi), nil
	})
}

// CancelEmergency handles POST /api/sessions/{id}/taxi/emergency/cancel
func (h *Handler) CancelEmergency(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		s.Taxi.CancelEmergency()
		return taxiView(s.Taxi), nil
	})
}

// ConfirmEmergency handles POST /api/sessions/{id}/taxi/emergency/confirm.
// The response carries the number for the client to dial.
func (h *Handler) ConfirmEmergency(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		d := &handoffDialer{}
		if err := s.Taxi.ConfirmEmergency(r.Context(), d); err != nil {
			return nil, err
		}
		v := taxiView(s.Taxi)
		v.Dial = d.url
		return v, nil
	})
}

type DriverView struct {
	Query      string             `json:"query"`
	Category   string             `json:"category"`
	Categories []transit.Category `json:"categories"`
	Routes     []transit.Route    `json:"routes"`
	Pending    *transit.Route     `json:"pending,omitempty"`
	Next       *nav.Target        `json:"next,omitempty"`
}

func (h *Handler) driverView(p *driver.Picker) DriverView {
	v := DriverView{
		Query:      p.Query,
		Category:   p.Category,
		Categories: h.cat.RouteCategories,
		Routes:     p.Visible(),
	}
	if r, ok := p.Pending(); ok {
		v.Pending = &r
	}
	return v
}

type DriverFilterRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
}

// GetDriver handles GET /api/sessions/{id}/driver
func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) { return h.driverView(s.Driver), nil })
}

// FilterDriverRoutes handles PUT /api/sessions/{id}/driver
func (h *Handler) FilterDriverRoutes(w http.ResponseWriter, r *http.Request) {
	var req DriverFilterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Category == "" {
		req.Category = category.All
	}
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		s.Driver.Query = req.Query
		s.Driver.Category = req.Category
		return h.driverView(s.Driver), nil
	})
}

// ChooseDriverRoute handles POST /api/sessions/{id}/driver/choose
func (h *Handler) ChooseDriverRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		if err := s.Driver.Choose(req.ID); err != nil {
			return nil, err
		}
		return h.driverView(s.Driver), nil
	})
}

// CancelDriverRoute handles POST /api/sessions/{id}/driver/cancel
func (h *Handler) CancelDriverRoute(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		s.Driver.Cancel()
		return h.driverView(s.Driver), nil
	})
}

// ConfirmDriverRoute handles POST /api/sessions/{id}/driver/confirm
func (h *Handler) ConfirmDriverRoute(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		next, err := s.Driver.Confirm()
		if err != nil {
			return nil, err
		}
		v := h.driverView(s.Driver)
		v.Next = &next
		return v, nil
	})
}

type SettingsView struct {
	Notifications bool             `json:"notifications"`
	Location      bool             `json:"location"`
	Language      transit.Language `json:"language"`
	Message       string           `json:"message,omitempty"`
}

type SettingsRequest struct {
	Notifications *bool `json:"notifications,omitempty"`
	Location      *bool `json:"location,omitempty"`
}

type LanguageRequest struct {
	ID string `json:"id"`
}

func (h *Handler) settingsView(s *session.Screens) SettingsView {
	l, _ := h.cat.Language(s.Settings.Language())
	return SettingsView{
		Notifications: s.Settings.Notifications,
		Location:      s.Settings.Location,
		Language:      l,
	}
}

// GetSettings handles GET /api/sessions/{id}/settings
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.withScreens(w, r, func(s *session.Screens) (any, error) { return h.settingsView(s), nil })
}

// UpdateSettings handles PUT /api/sessions/{id}/settings. Omitted toggles
// keep their value.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		if req.Notifications != nil {
			s.Settings.Notifications = *req.Notifications
		}
		if req.Location != nil {
			s.Settings.Location = *req.Location
		}
		return h.settingsView(s), nil
	})
}

// SaveLanguage handles POST /api/sessions/{id}/settings/language
func (h *Handler) SaveLanguage(w http.ResponseWriter, r *http.Request) {
	var req LanguageRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.withScreens(w, r, func(s *session.Screens) (any, error) {
		if err := s.Settings.SelectLanguage(req.ID); err != nil {
			return nil, err
		}
		_, msg := s.Settings.Save()
		v := h.settingsView(s)
		v.Message = msg
		return v, nil
	})
}

type StartRouteRequest struct {
	RouteID string `json:"routeId"`
	StopID  string `json:"stopId,omitempty"`
}

type StartRouteResponse struct {
	Route transit.Route `json:"route"`
	Next  nav.Target    `json:"next"`
}

// StartRoute handles POST /api/stops/start: the driver leaves the stop list
// for the map in driver mode.
func (h *Handler) StartRoute(w http.ResponseWriter, r *http.Request) {
	var req StartRouteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	sl, err := driver.OpenStops(h.cat, map[string]string{driver.ParamRouteID: req.RouteID})
	if err != nil {
		writeError(w, statusFor(err), "Failed to open stop list", err)
		return
	}
	if req.StopID != "" {
		if err := sl.Select(req.StopID); err != nil {
			writeError(w, statusFor(err), "Unknown stop", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, StartRouteResponse{Route: sl.Route(), Next: sl.Start()})
}
