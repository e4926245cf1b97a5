package http

import (
	"net/http"
)

type sponsorshipHandler struct {
	server *Server
}

type sponsorshipRequest struct {
	Message            string `json:"message"`
	AmountOfferedCents int64  `json:"amount_offered_cents"`
}

func (h *sponsorshipHandler) Apply(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req sponsorshipRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := h.server.services.Sponsorships.Apply(r.Context(), currentUser(r), eventID, req.Message, req.AmountOfferedCents)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusCreated, app)
}

func (h *sponsorshipHandler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	apps, err := h.server.services.Sponsorships.ListForEvent(r.Context(), currentUser(r), eventID)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, apps)
}

type sponsorshipReviewRequest struct {
	Approve bool `json:"approve"`
}

func (h *sponsorshipHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req sponsorshipReviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := h.server.services.Sponsorships.Review(r.Context(), currentUser(r), id, req.Approve)
	if err != nil {
		writeServiceError(w, err, app)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *sponsorshipHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	apps, err := h.server.services.Sponsorships.ListMine(r.Context(), currentUser(r))
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, apps)
}
