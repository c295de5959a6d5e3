package repository

import (
	"context"
	"database/sql"

	"teslo-shop/internal/domain"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string, includePasswordHash bool) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The email is normalized before it is stored.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	user.Email = domain.NormalizeEmail(user.Email)

	query := `
		INSERT INTO users (id, full_name, email, password_hash, is_active, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return mapError(err, "user")
}

// FindByEmail retrieves a user by email, compared case-insensitively.
// The password hash is only read when includePasswordHash is set.
func (r *userRepository) FindByEmail(ctx context.Context, email string, includePasswordHash bool) (*domain.User, error) {
	hashColumn := "''"
	if includePasswordHash {
		hashColumn = "password_hash"
	}

	query := `
		SELECT id, full_name, email, ` + hashColumn + `, is_active, role, created_at, updated_at
		FROM users
		WHERE LOWER(email) = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, domain.NormalizeEmail(email)))
}

// FindByID retrieves a user by ID without the password hash
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, full_name, email, '', is_active, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// DeleteAll removes every user. Products must be removed first.
func (r *userRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, mapError(err, "user")
	}
	return result.RowsAffected()
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "user")
	}
	return user, nil
}
