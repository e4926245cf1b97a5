package http

import (
	"net/http"

	"github.com/jcamiloaa/experienciaas/internal/domain"
)

type ticketHandler struct {
	server *Server
}

func (h *ticketHandler) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ticket, err := h.server.services.Tickets.Register(r.Context(), currentUser(r), eventID)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusCreated, ticket)
}

func (h *ticketHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ticket, err := h.server.services.Tickets.Confirm(r.Context(), currentUser(r), id)
	if err != nil {
		writeServiceError(w, err, ticket)
		return
	}
	writeData(w, http.StatusOK, ticket)
}

func (h *ticketHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	ticket, err := h.server.services.Tickets.Cancel(r.Context(), currentUser(r), id)
	if err != nil {
		writeServiceError(w, err, ticket)
		return
	}
	writeData(w, http.StatusOK, ticket)
}

func (h *ticketHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	tickets, total, err := h.server.services.Tickets.ListMine(r.Context(), currentUser(r), page, pageSize)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, paginated{Items: tickets, Total: total, Page: page, PageSize: pageSize})
}

type funnelRequest struct {
	SessionID string `json:"session_id"`
	Step      string `json:"step"`
}

// TrackFunnel records a registration funnel step. Always 202: losing
// a telemetry point must not surface to the visitor.
func (h *ticketHandler) TrackFunnel(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req funnelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.server.services.Analytics.TrackFunnelStep(r.Context(), eventID, viewerID(r), req.SessionID, domain.FunnelStep(req.Step), clientIP(r))
	writeData(w, http.StatusAccepted, nil)
}
