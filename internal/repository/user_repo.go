package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"saferail/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (full_name, username, email, phone_number, is_female, password_hash, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectUserColumns       = `SELECT id, full_name, username, email, phone_number, is_female, password_hash, created_at, last_login_at FROM users`
	selectUserByUsernameSQL = selectUserColumns + ` WHERE username = ?`
	selectUserByIDSQL       = selectUserColumns + ` WHERE id = ?`
	updateUserContactSQL    = `UPDATE users SET email = ?, phone_number = ? WHERE id = ?`
	updateUserLoginSQL      = `UPDATE users SET last_login_at = ? WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		u.FullName, u.Username, u.Email, u.PhoneNumber, u.IsFemale, u.PasswordHash, u.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %q: %w", u.Username, ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username))
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id))
	if err != nil {
		return nil, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) UpdateContact(ctx context.Context, id int, email, phone string) error {
	if _, err := r.db.ExecContext(ctx, updateUserContactSQL, email, phone, id); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update user %d: %w", id, ErrDuplicate)
		}
		return fmt.Errorf("update user %d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) TouchLogin(ctx context.Context, id int, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, updateUserLoginSQL, at.UTC(), id); err != nil {
		return fmt.Errorf("update last login for user %d: %w", id, err)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u         models.User
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PhoneNumber,
		&u.IsFemale, &u.PasswordHash, &u.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	if lastLogin.Valid {
		t := lastLogin.Time.UTC()
		u.LastLoginAt = &t
	}
	return &u, nil
}
