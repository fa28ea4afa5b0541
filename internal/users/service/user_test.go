package service

import (
	"context"
	"fmt"
	"testing"

	userserrors "crms/internal/users/errors"
	"crms/internal/users/validator"
	"crms/pkg/config"
	mongotx "crms/pkg/db/mongo"
	apperrors "crms/pkg/errors"
	"crms/pkg/logger"
	"crms/pkg/model"
)

type mockUserRepository struct {
	findByEmailFunc func(ctx context.Context, email string) (*model.User, error)

	created []*model.User
	deleted []string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = "507f1f77bcf86cd799439011"
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, id)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, fmt.Errorf("%w: %s", userserrors.ErrNotFound, email)
}

func (m *mockUserRepository) FindAll(ctx context.Context) ([]*model.User, error) {
	return []*model.User{}, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) { return 0, nil }

func (m *mockUserRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newService(repo *mockUserRepository) UserService {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	cfg := &config.Config{Log: log}
	return NewUserService(repo, validator.NewUserValidator(log), cfg)
}

func validUser() *model.User {
	return &model.User{
		Name:  "Alice Example",
		Email: "alice@campus.edu",
		Role:  model.RoleStudent,
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newService(repo)

	user := validUser()
	if err := svc.Create(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Status != model.UserActive {
		t.Errorf("expected ACTIVE default, got %s", user.Status)
	}
	if user.ID == "" {
		t.Error("expected assigned ID")
	}
}

func TestCreate_NormalizesEmail(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newService(repo)

	user := validUser()
	user.Email = "  Alice@Campus.EDU "
	if err := svc.Create(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@campus.edu" {
		t.Errorf("expected canonical email, got %q", user.Email)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "507f1f77bcf86cd799439012", Email: email}, nil
		},
	}
	svc := newService(repo)

	err := svc.Create(context.Background(), validUser())
	if err == nil {
		t.Fatal("expected conflict error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected CONFLICT, got %s", appErr.Code)
	}
	if len(repo.created) != 0 {
		t.Error("duplicate user must not be persisted")
	}
}

func TestCreate_InvalidEmail(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newService(repo)

	user := validUser()
	user.Email = "not-an-email"
	err := svc.Create(context.Background(), user)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
		t.Errorf("expected VALIDATION_ERROR, got %s", apperrors.AsAppError(err).Code)
	}
}

func TestCreate_InvalidRole(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newService(repo)

	user := validUser()
	user.Role = model.UserRole("JANITOR")
	if err := svc.Create(context.Background(), user); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestDelete(t *testing.T) {
	repo := &mockUserRepository{}
	svc := newService(repo)

	if err := svc.Delete(context.Background(), "507f1f77bcf86cd799439011"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Error("delete not forwarded to repository")
	}

	if err := svc.Delete(context.Background(), ""); err == nil {
		t.Error("empty ID must be rejected")
	}
}
