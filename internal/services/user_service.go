package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/demostack/userhub/internal/models"
	"github.com/demostack/userhub/internal/repositories"
	"github.com/demostack/userhub/pkg/logger"
)

// UserService enforces the business invariants the store does not: email
// uniqueness, existence before mutation, and pagination bounds. It holds no
// state of its own; every call is an independent transaction against the
// repository.
type UserService struct {
	repo   repositories.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo repositories.UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: log,
	}
}

// CreateUser creates a user after checking that no user holds the same
// normalized email. The pre-check produces the conflict on the common path;
// the store's own atomic check catches writers that raced past it, and the
// service translates that loss into the same domain error.
func (s *UserService) CreateUser(ctx context.Context, data models.CreateUserData) (*models.User, error) {
	email := models.NormalizeEmail(data.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to check email uniqueness", slog.Any("error", err))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		s.logger.Info("email already taken", slog.String("email", logger.SanitizedEmail(email)))
		return nil, &models.EmailAlreadyExistsError{Email: email}
	}

	user, err := s.repo.Create(ctx, data)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			s.logger.Info("email already taken", slog.String("email", logger.SanitizedEmail(email)))
			return nil, &models.EmailAlreadyExistsError{Email: email}
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", slog.String("user_id", user.ID))
	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		s.logger.Info("user not found", slog.String("user_id", id))
		return nil, &models.NotFoundError{ID: id}
	}

	return user, nil
}

// GetUsers lists users matching the filters, newest first. Pagination
// bounds are validated here; the store trusts its input.
func (s *UserService) GetUsers(ctx context.Context, filters *models.UserFilters, pagination *models.PaginationOptions) (*models.PaginatedResult[models.User], error) {
	if pagination != nil {
		if pagination.Page < 1 {
			return nil, &models.InvalidDataError{Message: "page must be greater than or equal to 1"}
		}
		if pagination.Limit < 1 {
			return nil, &models.InvalidDataError{Message: "limit must be greater than or equal to 1"}
		}
		if pagination.Limit > models.MaxLimit {
			return nil, &models.InvalidDataError{Message: fmt.Sprintf("limit must be less than or equal to %d", models.MaxLimit)}
		}
	}

	result, err := s.repo.FindMany(ctx, filters, pagination)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return result, nil
}

// UpdateUser applies a partial update after verifying the user exists and,
// when the email changes, that the new one is free. The candidate email is
// normalized before comparison so a re-submitted address that differs only
// in case or whitespace is not treated as a change.
func (s *UserService) UpdateUser(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		s.logger.Info("user not found", slog.String("user_id", id))
		return nil, &models.NotFoundError{ID: id}
	}

	if data.Email != "" {
		email := models.NormalizeEmail(data.Email)
		if email != existing.Email {
			taken, err := s.repo.ExistsByEmail(ctx, email)
			if err != nil {
				s.logger.Error("failed to check email uniqueness", slog.Any("error", err))
				return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
			}
			if taken {
				s.logger.Info("email already taken", slog.String("email", logger.SanitizedEmail(email)))
				return nil, &models.EmailAlreadyExistsError{Email: email}
			}
		}
	}

	user, err := s.repo.Update(ctx, id, data)
	if err != nil {
		// The pre-checks above can be invalidated by a concurrent writer;
		// the store's outcome is authoritative, re-derived here as the
		// same domain errors the pre-checks produce.
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Info("user not found", slog.String("user_id", id))
			return nil, &models.NotFoundError{ID: id}
		}
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			email := models.NormalizeEmail(data.Email)
			s.logger.Info("email already taken", slog.String("email", logger.SanitizedEmail(email)))
			return nil, &models.EmailAlreadyExistsError{Email: email}
		}
		s.logger.Error("failed to update user", slog.String("user_id", id), slog.Any("error", err))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", slog.String("user_id", id))
	return user, nil
}

// DeleteUser removes a user after verifying it exists.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return fmt.Errorf("failed to get user: %w", err)
	}
	if existing == nil {
		s.logger.Info("user not found", slog.String("user_id", id))
		return &models.NotFoundError{ID: id}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Removed between the existence check and the delete.
			s.logger.Info("user not found", slog.String("user_id", id))
			return &models.NotFoundError{ID: id}
		}
		s.logger.Error("failed to delete user", slog.String("user_id", id), slog.Any("error", err))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", slog.String("user_id", id))
	return nil
}
