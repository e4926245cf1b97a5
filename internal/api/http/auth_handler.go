package http

import (
	"net/http"
)

type authHandler struct {
	server *Server
}

type signupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.server.services.Auth.Signup(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, pair, err := h.server.services.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"user":   user,
		"tokens": pair,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *authHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}
	pair, err := h.server.services.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err, nil)
		return
	}
	writeData(w, http.StatusOK, pair)
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, currentUser(r))
}
