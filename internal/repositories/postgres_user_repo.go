package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demostack/userhub/internal/database"
	"github.com/demostack/userhub/internal/models"
)

// PostgresUserRepository is the persistent drop-in for UserRepository. The
// unique index on email is the store's critical section: a violation on
// insert or email change surfaces as ErrDuplicateEmail, matching the
// in-memory store.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(db *database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{pool: db.Pool}
}

// rowScanner covers both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User

	err := scanner.Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, database.MapPostgresError(err)
	}

	return &user, nil
}

func (r *PostgresUserRepository) Create(ctx context.Context, data models.CreateUserData) (*models.User, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO users (id, email, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, first_name, last_name, created_at, updated_at
	`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query,
		uuid.New().String(),
		models.NormalizeEmail(data.Email),
		models.NormalizeName(data.FirstName),
		models.NormalizeName(data.LastName),
		now, now,
	))
	if errors.Is(err, database.ErrUniqueViolation) {
		return nil, ErrDuplicateEmail
	}
	return user, err
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM users WHERE id = $1
	`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return user, err
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM users WHERE email = $1
	`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query, models.NormalizeEmail(email)))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return user, err
}

func (r *PostgresUserRepository) Update(ctx context.Context, id string, data models.UpdateUserData) (*models.User, error) {
	// Empty fields keep the stored value. Presence is judged on the raw
	// field, so a whitespace-only value is applied and trims to empty,
	// matching the in-memory store.
	query := `
		UPDATE users SET
			email = CASE WHEN $1 THEN $2 ELSE email END,
			first_name = CASE WHEN $3 THEN $4 ELSE first_name END,
			last_name = CASE WHEN $5 THEN $6 ELSE last_name END,
			updated_at = $7
		WHERE id = $8
		RETURNING id, email, first_name, last_name, created_at, updated_at
	`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query,
		data.Email != "", models.NormalizeEmail(data.Email),
		data.FirstName != "", models.NormalizeName(data.FirstName),
		data.LastName != "", models.NormalizeName(data.LastName),
		time.Now().UTC(), id,
	))
	if errors.Is(err, database.ErrUniqueViolation) {
		return nil, ErrDuplicateEmail
	}
	return user, err
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresUserRepository) FindMany(ctx context.Context, filters *models.UserFilters, pagination *models.PaginationOptions) (*models.PaginatedResult[models.User], error) {
	page := models.DefaultPagination()
	if pagination != nil {
		page = *pagination
	}

	where, args := buildUserFilters(filters)

	var total int
	countQuery := `SELECT COUNT(*) FROM users` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM users%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, page.Limit, (page.Page-1)*page.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users, err := scanUserRows(rows)
	if err != nil {
		return nil, err
	}

	return &models.PaginatedResult[models.User]{
		Data:       users,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: models.TotalPages(total, page.Limit),
	}, nil
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	if err := r.pool.QueryRow(ctx, query, models.NormalizeEmail(email)).Scan(&exists); err != nil {
		return false, database.MapPostgresError(err)
	}
	return exists, nil
}

func scanUserRows(rows pgx.Rows) ([]models.User, error) {
	defer rows.Close()

	users := make([]models.User, 0)

	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// buildUserFilters renders the optional substring predicates as an ANDed
// WHERE clause with positional args.
func buildUserFilters(filters *models.UserFilters) (string, []interface{}) {
	if filters.Empty() {
		return "", nil
	}

	var clauses []string
	var args []interface{}

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+escapeLike(value)+"%")
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}

	add("email", filters.Email)
	add("first_name", filters.FirstName)
	add("last_name", filters.LastName)

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters so filter values match
// literally, the same substring semantics the in-memory store has.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
