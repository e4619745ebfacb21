package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/demostack/userhub/internal/models"
	"github.com/demostack/userhub/internal/repositories"
)

func TestUserService_CreateUser_Success(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	result, err := svc.CreateUser(context.Background(), models.CreateUserData{
		Email:     "  John@Example.COM ",
		FirstName: "John",
		LastName:  "Doe",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "john@example.com", result.Email)
	assert.True(t, result.CreatedAt.Equal(result.UpdatedAt))
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	existing := NewTestUser("user123", "taken@example.com", "Existing", "User")

	var lookedUp string
	mockUserRepo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			lookedUp = email
			return existing, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	// Same address, different case and surrounding whitespace
	result, err := svc.CreateUser(context.Background(), models.CreateUserData{
		Email:     " TAKEN@example.com ",
		FirstName: "New",
		LastName:  "User",
	})

	assert.Error(t, err)
	assert.Nil(t, result)

	var conflict *models.EmailAlreadyExistsError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "taken@example.com", conflict.Email)
	assert.Equal(t, "taken@example.com", lookedUp, "uniqueness check should use the normalized email")
}

func TestUserService_CreateUser_RaceLostAtStore(t *testing.T) {
	// The pre-check sees a free email, but another writer takes it before
	// the insert; the store's rejection must surface as the same conflict.
	mockUserRepo := &MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, data models.CreateUserData) (*models.User, error) {
			return nil, repositories.ErrDuplicateEmail
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	result, err := svc.CreateUser(context.Background(), models.CreateUserData{
		Email:     "taken@example.com",
		FirstName: "New",
		LastName:  "User",
	})

	assert.Nil(t, result)

	var conflict *models.EmailAlreadyExistsError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "taken@example.com", conflict.Email)
}

func TestUserService_CreateUser_ConcurrentSameEmail(t *testing.T) {
	// Many writers, some pre-seeded load, one contested address. Exactly
	// one create may succeed; every loser gets the conflict error, and the
	// store ends up with a single user holding the address.
	repo := repositories.NewMemoryUserRepository()
	svc := NewUserService(repo, slog.Default())
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		_, err := svc.CreateUser(ctx, models.CreateUserData{Email: fmt.Sprintf("seed%d@x.com", i)})
		assert.NoError(t, err)
	}

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := svc.CreateUser(ctx, models.CreateUserData{Email: "same@x.com"})
			errs <- err
		}()
	}

	var created int
	for i := 0; i < n; i++ {
		if err := <-errs; err != nil {
			var conflict *models.EmailAlreadyExistsError
			assert.ErrorAs(t, err, &conflict)
		} else {
			created++
		}
	}
	assert.Equal(t, 1, created, "exactly one racing create may win")

	result, err := svc.GetUsers(ctx, &models.UserFilters{Email: "same@x.com"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestUserService_GetUser_Success(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test", "User")

	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	result, err := svc.GetUser(context.Background(), "user123")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "user123", result.ID)
	assert.Equal(t, "user@example.com", result.Email)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	result, err := svc.GetUser(context.Background(), "nonexistent")

	assert.Error(t, err)
	assert.Nil(t, result)

	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nonexistent", notFound.ID)
}

func TestUserService_GetUsers_Defaults(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		FindManyFunc: func(ctx context.Context, filters *models.UserFilters, pagination *models.PaginationOptions) (*models.PaginatedResult[models.User], error) {
			assert.Nil(t, pagination)
			return &models.PaginatedResult[models.User]{
				Data:  []models.User{},
				Page:  models.DefaultPage,
				Limit: models.DefaultLimit,
			}, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	result, err := svc.GetUsers(context.Background(), nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, models.DefaultPage, result.Page)
	assert.Equal(t, models.DefaultLimit, result.Limit)
}

func TestUserService_GetUsers_BoundsViolations(t *testing.T) {
	tests := []struct {
		name       string
		pagination models.PaginationOptions
	}{
		{"zero page", models.PaginationOptions{Page: 0, Limit: 10}},
		{"negative page", models.PaginationOptions{Page: -1, Limit: 10}},
		{"zero limit", models.PaginationOptions{Page: 1, Limit: 0}},
		{"limit above max", models.PaginationOptions{Page: 1, Limit: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := &MockUserRepository{}
			svc := NewUserService(mockUserRepo, slog.Default())

			result, err := svc.GetUsers(context.Background(), nil, &tt.pagination)

			assert.Error(t, err)
			assert.Nil(t, result)

			var invalid *models.InvalidDataError
			assert.ErrorAs(t, err, &invalid)
			assert.Equal(t, 0, mockUserRepo.FindManyCalls, "store must not be touched on bounds violation")
		})
	}
}

func TestUserService_UpdateUser_Success(t *testing.T) {
	existing := NewTestUser("user123", "user@example.com", "Old", "Name")

	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return existing, nil
		},
		UpdateFunc: func(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
			existing.FirstName = data.FirstName
			return existing, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	result, err := svc.UpdateUser(context.Background(), "user123", models.UpdateUserData{FirstName: "New"})

	assert.NoError(t, err)
	assert.Equal(t, "New", result.FirstName)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	updateCalled := false
	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, nil
		},
		UpdateFunc: func(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
			updateCalled = true
			return nil, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	result, err := svc.UpdateUser(context.Background(), "nonexistent", models.UpdateUserData{FirstName: "New"})

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.False(t, updateCalled, "update must not reach the store for an unknown id")

	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nonexistent", notFound.ID)
}

func TestUserService_UpdateUser_EmailConflict(t *testing.T) {
	existing := NewTestUser("user123", "user@example.com", "Test", "User")

	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return existing, nil
		},
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	result, err := svc.UpdateUser(context.Background(), "user123", models.UpdateUserData{Email: "taken@example.com"})

	assert.Error(t, err)
	assert.Nil(t, result)

	var conflict *models.EmailAlreadyExistsError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "taken@example.com", conflict.Email)
}

func TestUserService_UpdateUser_RaceLostAtStore(t *testing.T) {
	existing := NewTestUser("user123", "user@example.com", "Test", "User")

	// Existence and uniqueness pre-checks pass, then the store rejects:
	// deleted underneath in one case, email taken underneath in the other.
	t.Run("deleted underneath", func(t *testing.T) {
		mockUserRepo := &MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
				return existing, nil
			},
			UpdateFunc: func(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
				return nil, repositories.ErrNotFound
			},
		}
		svc := NewUserService(mockUserRepo, slog.Default())

		_, err := svc.UpdateUser(context.Background(), "user123", models.UpdateUserData{FirstName: "New"})

		var notFound *models.NotFoundError
		assert.ErrorAs(t, err, &notFound)
		assert.Equal(t, "user123", notFound.ID)
	})

	t.Run("email taken underneath", func(t *testing.T) {
		mockUserRepo := &MockUserRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
				return existing, nil
			},
			ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
				return false, nil
			},
			UpdateFunc: func(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
				return nil, repositories.ErrDuplicateEmail
			},
		}
		svc := NewUserService(mockUserRepo, slog.Default())

		_, err := svc.UpdateUser(context.Background(), "user123", models.UpdateUserData{Email: "taken@example.com"})

		var conflict *models.EmailAlreadyExistsError
		assert.ErrorAs(t, err, &conflict)
		assert.Equal(t, "taken@example.com", conflict.Email)
	})
}

func TestUserService_UpdateUser_SameEmailSkipsUniquenessCheck(t *testing.T) {
	existing := NewTestUser("user123", "user@example.com", "Test", "User")

	existsCalled := false
	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return existing, nil
		},
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			existsCalled = true
			return true, nil
		},
		UpdateFunc: func(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
			return existing, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	// Same address with different casing must normalize to a no-change
	result, err := svc.UpdateUser(context.Background(), "user123", models.UpdateUserData{Email: " USER@example.com "})

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.False(t, existsCalled, "unchanged email must not trigger a uniqueness check")
}

func TestUserService_DeleteUser_Success(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test", "User")

	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	err := svc.DeleteUser(context.Background(), "user123")

	assert.NoError(t, err)
}

func TestUserService_DeleteUser_RaceLostAtStore(t *testing.T) {
	user := NewTestUser("user123", "user@example.com", "Test", "User")

	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return user, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			return repositories.ErrNotFound
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	err := svc.DeleteUser(context.Background(), "user123")

	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user123", notFound.ID)
}

func TestUserService_DeleteUser_NotFound(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, nil
		},
	}

	svc := NewUserService(mockUserRepo, slog.Default())

	err := svc.DeleteUser(context.Background(), "nonexistent")

	assert.Error(t, err)

	var notFound *models.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nonexistent", notFound.ID)
}
