package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/punchclock-io/punchclock-backend-go/internal/domain/user"
	"github.com/punchclock-io/punchclock-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	ListCompany(w http.ResponseWriter, r *http.Request)
	ListAdmins(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.CreateUser(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User created", "email", created.Email)
	response.Created(w, "User created successfully", created)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	found, err := h.userService.GetUser(r.Context(), email)
	if err != nil {
		slog.Error("GetUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq user.UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.Email = chi.URLParam(r, "email")

	updated, err := h.userService.UpdateUser(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", updated)
}

// Deactivate implements UserHandler.
func (h *UserHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.userService.DeactivateUser(r.Context(), email); err != nil {
		slog.Error("DeactivateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User deactivated", "email", email)
	response.SuccessWithMessage(w, "User deactivated successfully", nil)
}

// ListCompany implements UserHandler.
func (h *UserHandlerImpl) ListCompany(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")

	users, err := h.userService.ListCompanyUsers(r.Context(), companyID)
	if err != nil {
		slog.Error("ListCompanyUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// ListAdmins implements UserHandler.
func (h *UserHandlerImpl) ListAdmins(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")

	admins, err := h.userService.ListCompanyAdmins(r.Context(), companyID)
	if err != nil {
		slog.Error("ListCompanyAdmins service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, admins)
}
