package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/calcpad-server/internal/logger"
	"github.com/avolkov/calcpad-server/internal/model"
)

type Auth struct {
	userStore    model.UserStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates a new account and issues an access token for it.
func (a *Auth) Register(ctx context.Context, params model.RegisterUserParams) (model.User, string, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", params.Username)

	existingUser, err := a.userStore.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by username",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by username: %w", err)
	}
	if existingUser.ID != 0 {
		a.logger.Info("Auth service: username already taken",
			"username", params.Username)
		return model.User{}, "", model.ErrDuplicateUsername
	}

	existingUser, err = a.userStore.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by email",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}
	if existingUser.ID != 0 {
		a.logger.Info("Auth service: email already taken",
			"username", params.Username)
		return model.User{}, "", model.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUsername) || errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, "", err
		}
		a.logger.Error("Auth service: failed to create user",
			"username", params.Username,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	accessToken, err := a.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to generate access token",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"username", user.Username,
		"user_id", user.ID)

	return user, accessToken, nil
}

// Login authenticates by username or email and issues an access token.
// Lookup misses and password mismatches fail identically.
func (a *Auth) Login(ctx context.Context, identifier, password string) (model.User, string, error) {
	a.logger.Debug("Auth service: starting user login",
		"login", identifier)

	user, err := a.userStore.GetByUsernameOrEmail(ctx, identifier)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: unknown login",
			"login", identifier)
		return model.User{}, "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by username or email",
			"login", identifier,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to get user by username or email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		a.logger.Info("Auth service: password mismatch",
			"login", identifier)
		return model.User{}, "", model.ErrInvalidCredentials
	}

	accessToken, err := a.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		a.logger.Error("Auth service: failed to generate access token",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	a.logger.Info("Auth service: login completed successfully",
		"login", identifier,
		"user_id", user.ID)

	return user, accessToken, nil
}

// GetUser returns a single account by id.
func (a *Auth) GetUser(ctx context.Context, id int64) (model.User, error) {
	a.logger.Debug("Auth service: getting user",
		"user_id", id)

	user, err := a.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, &model.NotFoundError{Resource: "User"}
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by id",
			"user_id", id,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// ListUsers returns all accounts.
func (a *Auth) ListUsers(ctx context.Context) ([]model.User, error) {
	a.logger.Debug("Auth service: listing users")

	users, err := a.userStore.List(ctx)
	if err != nil {
		a.logger.Error("Auth service: failed to list users",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// UpdateUser applies the supplied profile fields, rehashing the
// password when one is given.
func (a *Auth) UpdateUser(ctx context.Context, params model.UpdateUserParams) (model.User, error) {
	a.logger.Debug("Auth service: updating user",
		"user_id", params.ID)

	user, err := a.userStore.GetByID(ctx, params.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, &model.NotFoundError{Resource: "User"}
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user by id",
			"user_id", params.ID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	updated, err := a.userStore.Update(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateUsername) || errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, err
		}
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, &model.NotFoundError{Resource: "User"}
		}
		a.logger.Error("Auth service: failed to update user",
			"user_id", params.ID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	a.logger.Info("Auth service: user updated successfully",
		"user_id", updated.ID)

	return updated, nil
}

// DeleteUser removes an account. Owned calculations go with it through
// the cascading foreign key.
func (a *Auth) DeleteUser(ctx context.Context, id int64) error {
	a.logger.Debug("Auth service: deleting user",
		"user_id", id)

	err := a.userStore.Delete(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return &model.NotFoundError{Resource: "User"}
	}
	if err != nil {
		a.logger.Error("Auth service: failed to delete user",
			"user_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	a.logger.Info("Auth service: user deleted successfully",
		"user_id", id)

	return nil
}
