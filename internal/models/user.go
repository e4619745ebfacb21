package models

import (
	"strings"
	"time"
)

type User struct {
	ID        string
	Email     string // stored trimmed and lower-cased
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUserData carries the input for creating a user. Field-level format
// validation (email syntax etc.) is the caller's responsibility; the store
// only normalizes the values it receives.
type CreateUserData struct {
	Email     string
	FirstName string
	LastName  string
}

// UpdateUserData carries a partial update. An empty string means "leave the
// existing value unchanged" — there is no way to blank a field through an
// update.
type UpdateUserData struct {
	Email     string
	FirstName string
	LastName  string
}

// UserFilters holds optional case-insensitive substring predicates. All
// present filters must match (AND semantics).
type UserFilters struct {
	Email     string
	FirstName string
	LastName  string
}

// Empty reports whether no filter is set.
func (f *UserFilters) Empty() bool {
	return f == nil || (f.Email == "" && f.FirstName == "" && f.LastName == "")
}

// PaginationOptions selects a 1-based page of results.
type PaginationOptions struct {
	Page  int
	Limit int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// DefaultPagination returns the pagination applied when the caller omits it.
func DefaultPagination() PaginationOptions {
	return PaginationOptions{Page: DefaultPage, Limit: DefaultLimit}
}

// PaginatedResult is one page of an ordered result set. Total counts the
// rows after filtering but before pagination.
type PaginatedResult[T any] struct {
	Data       []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// TotalPages computes ceil(total/limit) for a filtered total.
func TotalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NormalizeEmail trims surrounding whitespace and lower-cases an email
// address. Applied before every store comparison and insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeName trims surrounding whitespace from a name component.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
