package services

import (
	"context"
	"time"

	"github.com/demostack/userhub/internal/models"
)

// MockUserRepository implements repositories.UserRepository for testing
type MockUserRepository struct {
	CreateFunc        func(ctx context.Context, data models.CreateUserData) (*models.User, error)
	FindByIDFunc      func(ctx context.Context, id string) (*models.User, error)
	FindByEmailFunc   func(ctx context.Context, email string) (*models.User, error)
	UpdateFunc        func(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error)
	DeleteFunc        func(ctx context.Context, id string) error
	FindManyFunc      func(ctx context.Context, filters *models.UserFilters, pagination *models.PaginationOptions) (*models.PaginatedResult[models.User], error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)

	FindManyCalls int
}

func (m *MockUserRepository) Create(ctx context.Context, data models.CreateUserData) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, data)
	}
	now := time.Now().UTC()
	return &models.User{
		ID:        "1",
		Email:     models.NormalizeEmail(data.Email),
		FirstName: models.NormalizeName(data.FirstName),
		LastName:  models.NormalizeName(data.LastName),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, data)
	}
	return nil, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) FindMany(ctx context.Context, filters *models.UserFilters, pagination *models.PaginationOptions) (*models.PaginatedResult[models.User], error) {
	m.FindManyCalls++
	if m.FindManyFunc != nil {
		return m.FindManyFunc(ctx, filters, pagination)
	}
	return &models.PaginatedResult[models.User]{Data: []models.User{}}, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

// NewTestUser builds a user with both timestamps set to now
func NewTestUser(id, email, firstName, lastName string) *models.User {
	now := time.Now().UTC()
	return &models.User{
		ID:        id,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
