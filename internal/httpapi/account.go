package httpapi

import (
	"log"
	"net/http"

	"transit-cnmi/internal/auth"
	"transit-cnmi/internal/theme"
)

type ThemeResponse struct {
	Preference theme.Preference `json:"preference"`
	Resolved   theme.Preference `json:"resolved"`
	Saved      bool             `json:"saved"`
	SaveError  string           `json:"saveError,omitempty"`
}

type ThemeRequest struct {
	Preference string `json:"preference"`
}

func (h *Handler) themeResponse(saveErr error) ThemeResponse {
	resp := ThemeResponse{
		Preference: h.theme.Preference(),
		Resolved:   h.theme.Resolved(),
		Saved:      saveErr == nil,
	}
	if saveErr != nil {
		resp.SaveError = saveErr.Error()
		if h.metrics != nil {
			h.metrics.ThemeSaveErrors.Inc()
		}
		log.Printf("theme: %v", saveErr)
	}
	return resp
}

// GetTheme handles GET /api/theme
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.themeResponse(nil))
}

// SetTheme handles PUT /api/theme. A failed write still switches the
// theme for this process; the response says whether it was saved.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	p, err := theme.ParsePreference(req.Preference)
	if err != nil {
		writeError(w, statusFor(err), "Invalid theme preference", err)
		return
	}
	saveErr := h.theme.Set(r.Context(), p)
	writeJSON(w, http.StatusOK, h.themeResponse(saveErr))
}

// ToggleTheme handles POST /api/theme/toggle
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	_, saveErr := h.theme.Toggle(r.Context())
	writeJSON(w, http.StatusOK, h.themeResponse(saveErr))
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.Credentials
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if h.metrics != nil {
		h.metrics.AuthSubmits.WithLabelValues("login").Inc()
	}
	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Login interrupted", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Signup handles POST /api/auth/signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req auth.Registration
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if _, err := auth.ParseRole(string(req.Role)); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid role", err)
		return
	}
	if h.metrics != nil {
		h.metrics.AuthSubmits.WithLabelValues("signup").Inc()
	}
	res, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Signup interrupted", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}
