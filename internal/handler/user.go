// Package handler contains the HTTP layer: request parsing, invoking the
// services, and writing the response envelopes. No business rules live here.
package handler

import (
	"net/http"

	"github.com/rahmatd/contactbook/internal/auth"
	"github.com/rahmatd/contactbook/internal/model"
	"github.com/rahmatd/contactbook/internal/service"
)

// UserHandler serves the /api/users endpoints.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleRegister handles POST /api/users.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, userResponse(user, false))
}

// HandleLogin handles POST /api/users/login. The issued session token is
// returned in the body; subsequent requests send it raw in the
// Authorization header.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, userResponse(user, true))
}

// HandleCurrent handles GET /api/users/current.
func (h *UserHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// RequireAuth guards this route; reaching here without a user is a bug.
		writeError(w, errMissingAuthContext)
		return
	}

	writeData(w, http.StatusOK, userResponse(user, false))
}

// HandleUpdateCurrent handles PATCH /api/users/current.
func (h *UserHandler) HandleUpdateCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, errMissingAuthContext)
		return
	}

	var req model.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.users.UpdateCurrent(r.Context(), user, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, userResponse(updated, false))
}

// HandleLogout handles DELETE /api/users/logout.
func (h *UserHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, errMissingAuthContext)
		return
	}

	if err := h.users.Logout(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, true)
}

func userResponse(u *model.User, withToken bool) model.UserResponse {
	resp := model.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}
	if withToken {
		resp.Token = u.Token
	}
	return resp
}
