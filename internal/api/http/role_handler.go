package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jcamiloaa/experienciaas/internal/domain"
)

type roleHandler struct {
	server *Server
}

type applyRequest struct {
	Role       string `json:"role"`
	Motivation string `json:"motivation"`
	Experience string `json:"experience"`
}

func (h *roleHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := h.server.services.Roles.Apply(r.Context(), currentUser(r).ID, domain.Role(req.Role), req.Motivation, req.Experience)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusCreated, app)
}

func (h *roleHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	eligibility, err := h.server.services.Roles.Eligibility(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, eligibility)
}

func (h *roleHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	app, err := h.server.services.Roles.GetApplication(r.Context(), currentUser(r).ID, id)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *roleHandler) FollowOrganizer(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if err := h.server.services.Roles.FollowOrganizer(r.Context(), currentUser(r).ID, slug); err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeMessage(w, http.StatusOK, nil, "following")
}

func (h *roleHandler) UnfollowOrganizer(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if err := h.server.services.Roles.UnfollowOrganizer(r.Context(), currentUser(r).ID, slug); err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeMessage(w, http.StatusOK, nil, "unfollowed")
}

// OrganizerProfile serves the public organizer page and records the
// visit in the view log.
func (h *roleHandler) OrganizerProfile(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	profile, err := h.server.services.Roles.OrganizerProfileBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}

	h.server.services.Analytics.TrackOrganizerView(r.Context(), profile.ID, viewerID(r), clientIP(r), r.UserAgent(), r.Referer())
	writeData(w, http.StatusOK, profile)
}

// SupplierProfile serves the public supplier page.
func (h *roleHandler) SupplierProfile(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	profile, err := h.server.services.Roles.SupplierProfileBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, profile)
}

// viewerID returns the authenticated user's ID for attribution, nil
// for anonymous traffic.
func viewerID(r *http.Request) *int32 {
	if user := currentUser(r); user != nil {
		return &user.ID
	}
	return nil
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return int32(id), true
}

func queryInt(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return fallback
	}
	return int32(v)
}
