package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/demostack/userhub/internal/models"
	pkghttp "github.com/demostack/userhub/pkg/http"
)

// UserService defines the interface for user business logic
type UserService interface {
	CreateUser(ctx context.Context, data models.CreateUserData) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUsers(ctx context.Context, filters *models.UserFilters, pagination *models.PaginationOptions) (*models.PaginatedResult[models.User], error)
	UpdateUser(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Request/Response DTOs

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// UpdateUserRequest represents the request body for updating a user.
// Omitted fields keep their stored values.
type UpdateUserRequest struct {
	Email     string `json:"email" validate:"omitempty,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UserResponse represents a user in the HTTP response
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ListUsersResponse represents one page of users
type ListUsersResponse struct {
	Data       []*UserResponse `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// RegisterRoutes registers all user routes with the chi router
func (h *UserHandler) RegisterRoutes(router chi.Router) {
	router.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateUser)       // POST /users
		r.Get("/", h.ListUsers)         // GET /users
		r.Get("/{id}", h.GetUser)       // GET /users/{id}
		r.Patch("/{id}", h.UpdateUser)  // PATCH /users/{id}
		r.Delete("/{id}", h.DeleteUser) // DELETE /users/{id}
	})
}

// CreateUser creates a new user
//
// @Summary Create a new user
// @Accept json
// @Param request body CreateUserRequest true "Create user request"
// @Produce json
// @Success 201 {object} UserResponse
// @Failure 400 {object} pkghttp.ErrorResponse
// @Failure 409 {object} pkghttp.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	// Surrounding whitespace is stripped downstream anyway; trim before
	// validating so a padded address is judged on its normalized form.
	req.Email = strings.TrimSpace(req.Email)

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.CreateUser(r.Context(), models.CreateUserData{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(userModelToResponse(user))
}

// GetUser retrieves a user by ID
//
// @Summary Get user by ID
// @Param id path string true "User ID"
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 404 {object} pkghttp.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userModelToResponse(user))
}

// ListUsers retrieves a page of users, optionally filtered
//
// @Summary List users
// @Param page query int false "Page (default 1)" default(1)
// @Param limit query int false "Items per page (default 10, max 100)" default(10)
// @Param email query string false "Email substring filter"
// @Param firstName query string false "First name substring filter"
// @Param lastName query string false "Last name substring filter"
// @Produce json
// @Success 200 {object} ListUsersResponse
// @Failure 400 {object} pkghttp.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var pagination *models.PaginationOptions
	if query.Get("page") != "" || query.Get("limit") != "" {
		page, err := intQueryParam(query.Get("page"), models.DefaultPage)
		if err != nil {
			pkghttp.WriteBadRequest(w, "Invalid page parameter")
			return
		}
		limit, err := intQueryParam(query.Get("limit"), models.DefaultLimit)
		if err != nil {
			pkghttp.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
		pagination = &models.PaginationOptions{Page: page, Limit: limit}
	}

	filters := &models.UserFilters{
		Email:     query.Get("email"),
		FirstName: query.Get("firstName"),
		LastName:  query.Get("lastName"),
	}

	result, err := h.service.GetUsers(r.Context(), filters, pagination)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response := &ListUsersResponse{
		Data:       make([]*UserResponse, len(result.Data)),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	}
	for i := range result.Data {
		response.Data[i] = userModelToResponse(&result.Data[i])
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// UpdateUser updates an existing user
//
// @Summary Update a user
// @Param id path string true "User ID"
// @Accept json
// @Param request body UpdateUserRequest true "Update user request"
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 400 {object} pkghttp.ErrorResponse
// @Failure 404 {object} pkghttp.ErrorResponse
// @Failure 409 {object} pkghttp.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	var req UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	user, err := h.service.UpdateUser(r.Context(), userID, models.UpdateUserData{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(userModelToResponse(user))
}

// DeleteUser deletes a user
//
// @Summary Delete a user
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} pkghttp.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	if err := h.service.DeleteUser(r.Context(), userID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeDomainError maps domain error codes to HTTP status classes
func writeDomainError(w http.ResponseWriter, err error) {
	switch models.CodeOf(err) {
	case models.ErrCodeNotFound:
		pkghttp.WriteNotFound(w, err.Error())
	case models.ErrCodeEmailExists:
		pkghttp.WriteConflict(w, err.Error())
	case models.ErrCodeInvalidData:
		pkghttp.WriteBadRequest(w, err.Error())
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}

func intQueryParam(value string, defaultVal int) (int, error) {
	if value == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New("not an integer")
	}
	return n, nil
}
