package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/user/crm-service/internal/delivery/http/middleware"
	"github.com/user/crm-service/internal/delivery/http/request"
	"github.com/user/crm-service/internal/delivery/http/response"
	"github.com/user/crm-service/internal/repository"
	"github.com/user/crm-service/internal/usecase"
)

const userNotFound = "User not found"

func (h *Handler) HandleSignupRequest(w http.ResponseWriter, r *http.Request) {
	var req request.Signup
	if err := h.validator.Decode(r, request.SchemaSignup, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, response.Result{Error: err.Error()})
		return
	}
	err := h.svc.Auth.RequestSignup(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, response.Result{OK: true, Message: "Signup request submitted. Await admin approval."})
	case errors.Is(err, repository.ErrConflict):
		h.writeJSON(w, http.StatusConflict, response.Result{Error: "A signup request for this email already exists"})
	case errors.Is(err, usecase.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, response.Result{Error: err.Error()})
	default:
		h.writeErr(w, r, err, userNotFound)
	}
}

func (h *Handler) HandleListPendingUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Auth.ListPending(r.Context())
	if err != nil {
		h.writeErr(w, r, err, userNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}

func (h *Handler) HandleApproveUser(w http.ResponseWriter, r *http.Request) {
	var req request.UserID
	if !h.decode(w, r, request.SchemaUserID, &req) {
		return
	}
	if _, err := h.svc.Auth.Approve(r.Context(), req.ID); err != nil {
		h.writeAccountErr(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Result{OK: true, Message: "User approved and activated."})
}

func (h *Handler) HandleRejectUser(w http.ResponseWriter, r *http.Request) {
	var req request.UserID
	if !h.decode(w, r, request.SchemaUserID, &req) {
		return
	}
	if err := h.svc.Auth.Reject(r.Context(), req.ID); err != nil {
		h.writeAccountErr(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Result{OK: true, Message: "Signup request rejected."})
}

func (h *Handler) writeAccountErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, response.Result{Error: userNotFound})
	case errors.Is(err, repository.ErrConflict):
		h.writeJSON(w, http.StatusConflict, response.Result{Error: "An account with this email already exists"})
	default:
		h.writeErr(w, r, err, userNotFound)
	}
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if !h.decode(w, r, request.SchemaLogin, &req) {
		return
	}
	s, err := h.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeErr(w, r, err, userNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, response.LoginResponse{
		OK:        true,
		Token:     s.Token,
		Username:  s.Username,
		Role:      s.Role,
		ExpiresAt: s.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Auth.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		h.writeErr(w, r, err, userNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Result{OK: true, Message: "Logged out."})
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	s, ok := middleware.SessionFrom(r.Context())
	if !ok {
		h.writeJSONError(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Auth.Users(r.Context())
	if err != nil {
		h.writeErr(w, r, err, userNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, users)
}
