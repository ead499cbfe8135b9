package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every endpoint onto a chi router.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	if h.metrics != nil {
		r.Use(h.observeRequests)
	}

	r.Get("/health", h.Health)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/destinations", h.SearchDestinations)
		r.Get("/route-options", list(h.cat.RouteOptions))
		r.Get("/arrivals", list(h.cat.Arrivals))
		r.Get("/buses", list(h.cat.Buses))
		r.Get("/languages", list(h.cat.Languages))
		r.Get("/routes", h.ListRoutes)
		r.Get("/stops", h.ListStops)
		r.Post("/stops/start", h.StartRoute)
		r.Get("/taxis", h.ListTaxis)
		r.Get("/guide", h.Guide)

		r.Post("/sessions", h.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/search", h.Search)
			r.Post("/destination", h.SelectDestination)
			r.Post("/route", h.SelectRoute)
			r.Post("/clear", h.Clear)

			r.Get("/taxi", h.GetTaxi)
			r.Put("/taxi", h.UpdateTaxiTrip)
			r.Post("/taxi/select", h.SelectTaxi)
			r.Post("/taxi/request", h.RequestTaxi)
			r.Post("/taxi/ack", h.AcknowledgeTaxi)
			r.Post("/taxi/emergency", h.OpenEmergency)
			r.Post("/taxi/emergency/cancel", h.CancelEmergency)
			r.Post("/taxi/emergency/confirm", h.ConfirmEmergency)

			r.Get("/driver", h.GetDriver)
			r.Put("/driver", h.FilterDriverRoutes)
			r.Post("/driver/choose", h.ChooseDriverRoute)
			r.Post("/driver/cancel", h.CancelDriverRoute)
			r.Post("/driver/confirm", h.ConfirmDriverRoute)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)
			r.Post("/settings/language", h.SaveLanguage)
		})

		r.Get("/theme", h.GetTheme)
		r.Put("/theme", h.SetTheme)
		r.Post("/theme/toggle", h.ToggleTheme)

		r.Post("/auth/login", h.Login)
		r.Post("/auth/signup", h.Signup)
	})

	return r
}

func (h *Handler) observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		h.metrics.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
