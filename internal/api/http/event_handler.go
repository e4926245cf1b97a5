package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
	"github.com/jcamiloaa/experienciaas/internal/service"
)

type eventHandler struct {
	server *Server
}

// Search lists public events and logs the query for the popular
// searches leaderboard.
func (h *eventHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := repository.EventSearchFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
	}
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	events, total, err := h.server.services.Events.Search(r.Context(), filter, page, pageSize)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}

	if filter.Query != "" || filter.Category != "" || filter.City != "" {
		h.server.services.Analytics.TrackSearch(r.Context(), filter.Query, viewerID(r), clientIP(r), total, filter.Category, filter.City)
	}
	writeData(w, http.StatusOK, paginated{Items: events, Total: total, Page: page, PageSize: pageSize})
}

// Get serves one event by slug and records the page view.
func (h *eventHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	event, err := h.server.services.Events.GetBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	if !event.Listable() {
		// Drafts stay private to their organizer and staff.
		user := currentUser(r)
		if user == nil || (user.ID != event.OrganizerID && !user.IsStaff) {
			writeError(w, http.StatusNotFound, service.ErrNotFound.Error())
			return
		}
	} else {
		h.server.services.Analytics.TrackEventView(r.Context(), event.ID, viewerID(r), clientIP(r), r.UserAgent(), r.Referer())
	}
	writeData(w, http.StatusOK, event)
}

func (h *eventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateEventInput
	if !decodeBody(w, r, &input) {
		return
	}
	event, err := h.server.services.Events.Create(r.Context(), currentUser(r), input)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusCreated, event)
}

func (h *eventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var input service.CreateEventInput
	if !decodeBody(w, r, &input) {
		return
	}
	event, err := h.server.services.Events.Update(r.Context(), currentUser(r), id, input)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, event)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *eventHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	event, err := h.server.services.Events.SetStatus(r.Context(), currentUser(r), id, domain.EventStatus(req.Status))
	if err != nil {
		writeServiceError(w, err, event)
		return
	}
	writeData(w, http.StatusOK, event)
}

func (h *eventHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	events, total, err := h.server.services.Events.ListByOrganizer(r.Context(), currentUser(r).ID, page, pageSize)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, paginated{Items: events, Total: total, Page: page, PageSize: pageSize})
}
