package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"transit-cnmi/internal/panel"
)

// SessionResponse is a map panel snapshot plus the sheet height when the
// client sent its screen height.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	panel.Snapshot
	SheetHeight float64 `json:"sheetHeight"`
}

func (h *Handler) sessionResponse(r *http.Request, id string, snap panel.Snapshot) SessionResponse {
	return SessionResponse{
		SessionID:   id,
		Snapshot:    snap,
		SheetHeight: h.snapPoints.Offset(snap.SheetIndex, screenHeight(r)),
	}
}

// CreateSession handles POST /api/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	snap, err := h.sessions.Snapshot(s.ID)
	if err != nil {
		writeError(w, statusFor(err), "Failed to create session", err)
		return
	}
	writeJSON(w, http.StatusCreated, h.sessionResponse(r, s.ID, snap))
}

// GetSession handles GET /api/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := h.sessions.Snapshot(id)
	if err != nil {
		writeError(w, statusFor(err), "Session not found", err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionResponse(r, id, snap))
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), "Session not found", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type SearchRequest struct {
	Query string `json:"query"`
}

type DestinationRequest struct {
	Name string `json:"name"`
}

type RouteRequest struct {
	ID string `json:"id"`
}

// Search handles POST /api/sessions/{id}/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.apply(w, r, func(m *panel.Machine) (panel.Snapshot, error) { return m.Search(req.Query), nil })
}

// SelectDestination handles POST /api/sessions/{id}/destination
func (h *Handler) SelectDestination(w http.ResponseWriter, r *http.Request) {
	var req DestinationRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.apply(w, r, func(m *panel.Machine) (panel.Snapshot, error) { return m.SelectDestination(req.Name) })
}

// SelectRoute handles POST /api/sessions/{id}/route
func (h *Handler) SelectRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.apply(w, r, func(m *panel.Machine) (panel.Snapshot, error) { return m.SelectRoute(req.ID) })
}

// Clear handles POST /api/sessions/{id}/clear
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(m *panel.Machine) (panel.Snapshot, error) { return m.Clear(), nil })
}

func (h *Handler) apply(w http.ResponseWriter, r *http.Request, fn func(*panel.Machine) (panel.Snapshot, error)) {
	id := chi.URLParam(r, "id")
	snap, err := h.sessions.Do(id, fn)
	if err != nil {
		writeError(w, statusFor(err), "Panel update rejected", err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionResponse(r, id, snap))
}
