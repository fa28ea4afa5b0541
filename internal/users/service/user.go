package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	userserrors "crms/internal/users/errors"
	"crms/internal/users/repository"
	"crms/internal/users/validator"
	"crms/pkg/config"
	apperrors "crms/pkg/errors"
	"crms/pkg/model"
	"crms/pkg/sanitizer"
)

type UserService interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) Create(ctx context.Context, user *model.User) error {
	s.sanitize(user)
	s.applyDefaults(user)

	if err := s.validator.Validate(user); err != nil {
		s.cfg.Log.Warn("User validation failed",
			"email", user.Email,
			"error", err,
		)
		return apperrors.Validation("User validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByEmail(sessCtx, user.Email)
		if err != nil && !errors.Is(err, userserrors.ErrNotFound) {
			return fmt.Errorf("failed to check for duplicate email: %w", err)
		}
		if existing != nil {
			return apperrors.Conflict(fmt.Sprintf(
				"User with email %s already exists (id: %s)",
				user.Email, existing.ID,
			))
		}

		if err := s.repo.Create(sessCtx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})

	if err != nil {
		s.cfg.Log.Error("Failed to create user",
			"email", user.Email,
			"error", err,
		)
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Internal("Failed to create user", err)
	}

	s.cfg.Log.Info("User created successfully",
		"id", user.ID,
		"email", user.Email,
		"role", user.Role,
	)
	return nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to get user by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list users", "error", err)
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	if users == nil {
		users = []*model.User{}
	}
	return users, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("User ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, userserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid user ID format")
		}
		s.cfg.Log.Error("Failed to delete user", "id", id, "error", err)
		return apperrors.Internal("Failed to delete user", err)
	}

	s.cfg.Log.Info("User deleted successfully", "id", id)
	return nil
}

func (s *userService) sanitize(user *model.User) {
	user.Name = sanitizer.NormalizeName(user.Name)
	user.Email = sanitizer.SanitizeEmail(user.Email)
	user.Phone = sanitizer.SanitizePhone(user.Phone)
}

func (s *userService) applyDefaults(user *model.User) {
	if user.Status == "" {
		user.Status = model.UserActive
	}
	if user.Role == "" {
		user.Role = model.RoleStudent
	}
}
