package repositories

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/demostack/userhub/internal/models"
)

// MemoryUserRepository keeps users in a map keyed by id. Each instance owns
// its own map and id counter, so independent repositories never share state.
//
// A single mutex makes every operation atomic: the counter increment with
// the insert, and the email uniqueness check with the mutation it guards.
// Concurrent creates can therefore never share an id or an email. Filtering
// and sorting run over the whole collection on every call; the store targets
// moderate in-memory volumes.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string // normalized email -> id
	nextID  uint64
}

// NewMemoryUserRepository returns an empty in-memory store. Ids start at 1
// and are never reused, even after deletion.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
		nextID:  1,
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, data models.CreateUserData) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := models.NormalizeEmail(data.Email)
	if _, taken := r.byEmail[email]; taken {
		return nil, ErrDuplicateEmail
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        strconv.FormatUint(r.nextID, 10),
		Email:     email,
		FirstName: models.NormalizeName(data.FirstName),
		LastName:  models.NormalizeName(data.LastName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.nextID++
	r.users[user.ID] = user
	r.byEmail[user.Email] = user.ID

	return copyUser(user), nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(user), nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := models.NormalizeEmail(email)

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalized]
	if !ok {
		return nil, nil
	}
	return copyUser(r.users[id]), nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	// Empty fields are left unchanged; an explicit blank never clears a
	// value. Presence is judged on the raw field, so a whitespace-only
	// value is applied and trims to empty.
	if data.Email != "" {
		email := models.NormalizeEmail(data.Email)
		if email != user.Email {
			if _, taken := r.byEmail[email]; taken {
				return nil, ErrDuplicateEmail
			}
			delete(r.byEmail, user.Email)
			r.byEmail[email] = user.ID
		}
		user.Email = email
	}
	if data.FirstName != "" {
		user.FirstName = models.NormalizeName(data.FirstName)
	}
	if data.LastName != "" {
		user.LastName = models.NormalizeName(data.LastName)
	}
	user.UpdatedAt = time.Now().UTC()

	return copyUser(user), nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, user.Email)
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) FindMany(ctx context.Context, filters *models.UserFilters, pagination *models.PaginationOptions) (*models.PaginatedResult[models.User], error) {
	page := models.DefaultPagination()
	if pagination != nil {
		page = *pagination
	}

	// Copy matches under the lock so sorting never races a mutation.
	r.mu.RLock()
	matched := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		if matchesFilters(user, filters) {
			matched = append(matched, *user)
		}
	}
	r.mu.RUnlock()

	// Newest first. Equal timestamps fall back to the numeric id, which
	// reflects creation order.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return numericID(matched[i].ID) > numericID(matched[j].ID)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (page.Page - 1) * page.Limit
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}

	return &models.PaginatedResult[models.User]{
		Data:       matched[start:end],
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: models.TotalPages(total, page.Limit),
	}, nil
}

func (r *MemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func matchesFilters(user *models.User, filters *models.UserFilters) bool {
	if filters.Empty() {
		return true
	}
	if filters.Email != "" && !containsFold(user.Email, filters.Email) {
		return false
	}
	if filters.FirstName != "" && !containsFold(user.FirstName, filters.FirstName) {
		return false
	}
	if filters.LastName != "" && !containsFold(user.LastName, filters.LastName) {
		return false
	}
	return true
}

func containsFold(value, substr string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}

func numericID(id string) uint64 {
	n, _ := strconv.ParseUint(id, 10, 64)
	return n
}

// copyUser shields the backing map from mutation through returned values.
func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}
