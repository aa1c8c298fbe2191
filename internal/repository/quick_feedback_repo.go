package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"saferail/internal/models"
)

type QuickFeedbackSQLite struct {
	db *sql.DB
}

func NewQuickFeedbackSQLite(db *sql.DB) *QuickFeedbackSQLite { return &QuickFeedbackSQLite{db: db} }

var _ QuickFeedbackRepo = (*QuickFeedbackSQLite)(nil)

const (
	insertQuickFeedbackSQL = `INSERT INTO quick_feedback (id, type, message, created_at) VALUES (?, ?, ?, ?)`
	selectQuickFeedbackSQL = `SELECT id, type, message, created_at FROM quick_feedback`
	deleteQuickFeedbackSQL = `DELETE FROM quick_feedback WHERE id = ?`
)

func (r *QuickFeedbackSQLite) Create(ctx context.Context, f models.QuickFeedback) error {
	var msg sql.NullString
	if f.Message != nil {
		msg = sql.NullString{String: *f.Message, Valid: true}
	}
	if _, err := r.db.ExecContext(ctx, insertQuickFeedbackSQL, f.ID, f.Type, msg, f.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("insert quick feedback %s: %w", f.ID, err)
	}
	return nil
}

// List returns items in submission order.
func (r *QuickFeedbackSQLite) List(ctx context.Context) ([]models.QuickFeedback, error) {
	rows, err := r.db.QueryContext(ctx, selectQuickFeedbackSQL+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list quick feedback: %w", err)
	}
	defer rows.Close()

	out := make([]models.QuickFeedback, 0, 16)
	for rows.Next() {
		f, err := scanQuickFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Get returns (nil, nil) when the item does not exist.
func (r *QuickFeedbackSQLite) Get(ctx context.Context, id string) (*models.QuickFeedback, error) {
	f, err := scanQuickFeedback(r.db.QueryRowContext(ctx, selectQuickFeedbackSQL+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select quick feedback %s: %w", id, err)
	}
	return &f, nil
}

func (r *QuickFeedbackSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteQuickFeedbackSQL, id); err != nil {
		return fmt.Errorf("delete quick feedback %s: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuickFeedback(s rowScanner) (models.QuickFeedback, error) {
	var (
		f   models.QuickFeedback
		msg sql.NullString
	)
	if err := s.Scan(&f.ID, &f.Type, &msg, &f.CreatedAt); err != nil {
		return models.QuickFeedback{}, err
	}
	if msg.Valid {
		m := msg.String
		f.Message = &m
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return f, nil
}
