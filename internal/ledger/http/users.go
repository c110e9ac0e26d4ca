package http

import (
	"encoding/json"
	"net/http"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/internal/ledger/service"
	"github.com/recouvro/recouvro/pkg/httpx"
	"github.com/recouvro/recouvro/pkg/ledgersdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles the user listing endpoint
//
//	@Summary		List users
//	@Description	Returns all operator accounts in creation order.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	ledgersdk.ListUsersResponse	"All users"
//	@Failure		500	{object}	ledgersdk.ErrorResponse		"Internal server error"
//	@Router			/api/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	resp := ledgersdk.ListUsersResponse{Users: make([]ledgersdk.UserInfo, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, userInfo(u))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate handles the user creation endpoint
//
//	@Summary		Create a user
//	@Description	Registers an operator account. Credentials live in the authentication frontend;
//	@Description	only the identity and role are kept here. Role defaults to "user".
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ledgersdk.CreateUserRequest	true	"Username and optional role"
//	@Success		201	{object}	ledgersdk.UserInfo		"Created user"
//	@Failure		400	{object}	ledgersdk.ErrorResponse	"Validation failure"
//	@Failure		409	{object}	ledgersdk.ErrorResponse	"Username already taken"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ledgersdk.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, "Corps JSON invalide")
		return
	}

	user, err := h.UserService.CreateUser(ctx, req.Username, domain.Role(req.Role))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, userInfo(user))
}

// HandleUpdateRole handles the role update endpoint
//
//	@Summary		Change a user's role
//	@Description	Switches an operator account between the "user" and "admin" roles.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		ledgersdk.UpdateRoleRequest	true	"New role"
//	@Success		200	{object}	ledgersdk.UserInfo		"Updated user"
//	@Failure		400	{object}	ledgersdk.ErrorResponse	"Unknown role"
//	@Failure		404	{object}	ledgersdk.ErrorResponse	"Unknown user"
//	@Failure		500	{object}	ledgersdk.ErrorResponse	"Internal server error"
//	@Router			/api/users/{id}/role [put].
func (h *UsersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ledgersdk.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ledgersdk.ErrorCodeBadRequest, "Corps JSON invalide")
		return
	}

	user, err := h.UserService.UpdateRole(ctx, r.PathValue("id"), domain.Role(req.Role))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userInfo(user))
}
