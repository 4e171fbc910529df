package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avolkov/calcpad-server/internal/logger"
	"github.com/avolkov/calcpad-server/internal/model"
)

// AuthService defines user account and session operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterUserParams) (model.User, string, error)
	Login(ctx context.Context, identifier, password string) (model.User, string, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, params model.UpdateUserParams) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Auth handles HTTP endpoints for users and authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a user account and returns it with an access token.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing register request")

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, err)
		return
	}

	user, accessToken, err := h.authService.Register(r.Context(), model.RegisterUserParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: register failed",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: user registered successfully",
		"user_id", user.ID,
		"username", user.Username)

	respondJSON(w, http.StatusCreated, AuthResponse{
		Message:     "User registered successfully",
		User:        newUserResponse(user),
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// Login verifies credentials and returns the user with an access token.
// The username field accepts either the username or the email address.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing login request")

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, err)
		return
	}

	user, accessToken, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"login", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: user logged in successfully",
		"user_id", user.ID)

	respondJSON(w, http.StatusOK, AuthResponse{
		Message:     "Login successful",
		User:        newUserResponse(user),
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// ListUsers returns all user accounts.
func (h *Auth) ListUsers(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Auth handler: processing list users request")

	users, err := h.authService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Auth handler: list users failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, newUserResponse(user))
	}

	respondJSON(w, http.StatusOK, responses)
}

// GetUser returns a user account by ID.
func (h *Auth) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Auth handler: processing get user request",
		"user_id", id)

	user, err := h.authService.GetUser(r.Context(), id)
	if err != nil {
		h.logger.Error("Auth handler: get user failed",
			"user_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newUserResponse(user))
}

// UpdateUser applies a partial update to a user account.
func (h *Auth) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Auth handler: processing update user request",
		"user_id", id)

	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		handleError(w, err)
		return
	}

	user, err := h.authService.UpdateUser(r.Context(), model.UpdateUserParams{
		ID:       id,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: update user failed",
			"user_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: user updated successfully",
		"user_id", user.ID)

	respondJSON(w, http.StatusOK, newUserResponse(user))
}

// DeleteUser removes a user account and its calculations.
func (h *Auth) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("Auth handler: processing delete user request",
		"user_id", id)

	if err := h.authService.DeleteUser(r.Context(), id); err != nil {
		h.logger.Error("Auth handler: delete user failed",
			"user_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: user deleted successfully",
		"user_id", id)

	respondJSON(w, http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}
