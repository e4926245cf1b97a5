package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jcamiloaa/experienciaas/internal/domain"
	"github.com/jcamiloaa/experienciaas/internal/repository"
)

// adminHandler is the management surface: application review, role
// suspension and revocation, account toggling.
type adminHandler struct {
	server *Server
}

func (h *adminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter := repository.ApplicationListFilter{
		Status: domain.ApplicationStatus(r.URL.Query().Get("status")),
		Role:   domain.Role(r.URL.Query().Get("role")),
		Search: r.URL.Query().Get("search"),
	}
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	apps, total, err := h.server.services.Roles.ListApplications(r.Context(), currentUser(r).ID, filter, page, pageSize)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, paginated{Items: apps, Total: total, Page: page, PageSize: pageSize})
}

type reviewRequest struct {
	AdminNotes string `json:"admin_notes"`
	Reason     string `json:"reason"`
}

func (h *adminHandler) ApproveApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := h.server.services.Roles.Approve(r.Context(), currentUser(r).ID, id, req.AdminNotes)
	if err != nil {
		writeServiceError(w, err, app)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *adminHandler) RejectApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req reviewRequest
	if !decodeBody(w, r, &req) {
		return
	}
	app, err := h.server.services.Roles.Reject(r.Context(), currentUser(r).ID, id, req.Reason)
	if err != nil {
		writeServiceError(w, err, app)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *adminHandler) MarkUnderReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	app, err := h.server.services.Roles.MarkUnderReview(r.Context(), currentUser(r).ID, id)
	if err != nil {
		writeServiceError(w, err, app)
		return
	}
	writeData(w, http.StatusOK, app)
}

func (h *adminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := repository.UserListFilter{
		Role:   r.URL.Query().Get("role"),
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	users, total, err := h.server.services.Roles.ListUsers(r.Context(), currentUser(r).ID, filter, page, pageSize)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, paginated{Items: users, Total: total, Page: page, PageSize: pageSize})
}

func (h *adminHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	status := domain.SupplierStatus(r.URL.Query().Get("status"))
	search := r.URL.Query().Get("search")
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 20)

	profiles, total, err := h.server.services.Roles.ListSupplierProfiles(r.Context(), currentUser(r).ID, status, search, page, pageSize)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, paginated{Items: profiles, Total: total, Page: page, PageSize: pageSize})
}

type suspendRequest struct {
	Role   string `json:"role"`
	Days   *int32 `json:"days"`
	Reason string `json:"reason"`
}

func (h *adminHandler) SuspendRole(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req suspendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.server.services.Roles.Suspend(r.Context(), currentUser(r).ID, targetID, domain.Role(req.Role), req.Days, req.Reason)
	if err != nil {
		writeServiceError(w, err, user)
		return
	}
	writeData(w, http.StatusOK, user)
}

type roleActionRequest struct {
	Role   string `json:"role"`
	Reason string `json:"reason"`
}

func (h *adminHandler) ReactivateRole(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req roleActionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.server.services.Roles.Reactivate(r.Context(), currentUser(r).ID, targetID, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, err, user)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *adminHandler) RevokeRole(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req roleActionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.server.services.Roles.Revoke(r.Context(), currentUser(r).ID, targetID, domain.Role(req.Role), req.Reason)
	if err != nil {
		writeServiceError(w, err, user)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *adminHandler) PromoteRole(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req roleActionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.server.services.Roles.Promote(r.Context(), currentUser(r).ID, targetID, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, err, user)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *adminHandler) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.server.services.Roles.ActivateAccount(r.Context(), currentUser(r).ID, targetID)
	if err != nil {
		writeServiceError(w, err, user)
		return
	}
	writeData(w, http.StatusOK, user)
}

type deactivateRequest struct {
	Reason string `json:"reason"`
}

func (h *adminHandler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	// The reason is optional, so an empty body is fine.
	var req deactivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.server.services.Roles.DeactivateAccount(r.Context(), currentUser(r).ID, targetID, req.Reason)
	if err != nil {
		writeServiceError(w, err, user)
		return
	}
	writeData(w, http.StatusOK, user)
}
