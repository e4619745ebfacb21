package repositories

import (
	"context"
	"errors"

	"github.com/demostack/userhub/internal/models"
)

// Low-level store signals. Neither is a domain error; the service layer
// re-derives the caller-facing error identity from them.
var (
	// ErrNotFound is returned by Update and Delete on an unknown id.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when an insert or email change would
	// duplicate a normalized email. The store performs this check in the
	// same critical section as the mutation, so it holds even when the
	// service's own pre-check raced another writer.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository is the persistence contract all backing stores satisfy.
// Every method accepts a context so a persistent implementation can suspend
// on I/O; the in-memory implementation completes synchronously behind the
// same signatures, keeping callers implementation-agnostic.
type UserRepository interface {
	// Create inserts a new user, assigning its id and timestamps. The
	// email is normalized and the names trimmed before insertion. Returns
	// ErrDuplicateEmail when another user already holds the normalized
	// email; the check and the insert are atomic together.
	Create(ctx context.Context, data models.CreateUserData) (*models.User, error)

	// FindByID returns the user with the given id, or (nil, nil) when no
	// such user exists. Absence is a valid outcome, not an error.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail normalizes the email the same way Create does, then
	// looks it up. Returns (nil, nil) on a miss.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update merges the non-empty fields of data into the stored user and
	// refreshes UpdatedAt. Returns ErrNotFound for an unknown id, and
	// ErrDuplicateEmail when changing the email to one another user holds.
	Update(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error)

	// Delete removes the user. Returns ErrNotFound for an unknown id.
	Delete(ctx context.Context, id string) error

	// FindMany applies the filters, orders by CreatedAt descending and
	// returns the requested page. Nil filters match everything; nil
	// pagination defaults to page 1, limit 10. Bounds checking is the
	// service's job; the store trusts its input.
	FindMany(ctx context.Context, filters *models.UserFilters, pagination *models.PaginationOptions) (*models.PaginatedResult[models.User], error)

	// ExistsByEmail reports whether a user with the normalized email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
