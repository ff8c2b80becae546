package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todo_service/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?) RETURNING id`
	selectUserByEmailSQL = `SELECT id, name, email, password_hash FROM users WHERE email = ?`
)

// Create inserts a new user and returns its ID. A taken email yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(insertUserSQL), u.Name, u.Email, u.PasswordHash).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", u.Email, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return id, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(selectUserByEmailSQL), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return &u, nil
}
