package http

import (
	"net/http"
)

type analyticsHandler struct {
	server *Server
}

// OrganizerDashboard serves the caller's own dashboard, or another
// organizer's when staff pass user_id.
func (h *analyticsHandler) OrganizerDashboard(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(r)
	organizerUserID := queryInt(r, "user_id", actor.ID)
	days := int(queryInt(r, "days", 30))

	dashboard, err := h.server.services.Analytics.OrganizerDashboard(r.Context(), actor, organizerUserID, days)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, dashboard)
}

func (h *analyticsHandler) PlatformDashboard(w http.ResponseWriter, r *http.Request) {
	days := int(queryInt(r, "days", 30))

	dashboard, err := h.server.services.Analytics.PlatformDashboard(r.Context(), currentUser(r), days)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, dashboard)
}

func (h *analyticsHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)

	stats, err := h.server.services.Analytics.DailyStatsHistory(r.Context(), currentUser(r), days)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, stats)
}
