package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"saferail/internal/models"
)

type FeedbackSQLite struct {
	db *sql.DB
}

func NewFeedbackSQLite(db *sql.DB) *FeedbackSQLite { return &FeedbackSQLite{db: db} }

var _ FeedbackRepo = (*FeedbackSQLite)(nil)

const (
	insertFeedbackSQL = `INSERT INTO feedback (id, user_id, user_label, station, category, message, created_at, upvotes, downvotes, priority, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectFeedbackSQL = `SELECT id, user_id, user_label, station, category, message, created_at, upvotes, downvotes, priority, status FROM feedback`

	// Old column values are visible on the right-hand side of SET, so the
	// threshold check sees the downvote being added in the same statement.
	voteFeedbackSQL = `UPDATE feedback SET
    upvotes = upvotes + ?,
    downvotes = downvotes + ?,
    status = CASE WHEN downvotes + ? >= ? THEN 'hidden' ELSE status END
WHERE id = ? AND status = 'active'`

	feedbackStatsSQL = `SELECT COUNT(*), COALESCE(SUM(CASE WHEN priority = 'high' THEN 1 ELSE 0 END), 0) FROM feedback WHERE status = 'active'`
	countFeedbackSQL = `SELECT COUNT(*) FROM feedback`
)

func (r *FeedbackSQLite) Create(ctx context.Context, f models.Feedback) error {
	var userID sql.NullInt64
	if f.UserID != 0 {
		userID = sql.NullInt64{Int64: int64(f.UserID), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, insertFeedbackSQL,
		f.ID, userID, f.User, f.Station, f.Category, f.Message, f.CreatedAt.UTC(),
		f.Upvotes, f.Downvotes, f.Priority, f.Status)
	if err != nil {
		return fmt.Errorf("insert feedback %s: %w", f.ID, err)
	}
	return nil
}

// Get returns (nil, nil) when the feedback does not exist.
func (r *FeedbackSQLite) Get(ctx context.Context, id string) (*models.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, selectFeedbackSQL+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("select feedback %s: %w", id, err)
	}
	list, err := scanFeedbackRows(rows)
	if err != nil {
		return nil, fmt.Errorf("select feedback %s: %w", id, err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

// ListActive returns active feedback, newest first.
func (r *FeedbackSQLite) ListActive(ctx context.Context, f FeedbackFilter) ([]models.Feedback, error) {
	conds := []string{"status = ?"}
	args := []any{models.FeedbackActive}
	if s := strings.TrimSpace(f.Station); s != "" {
		conds = append(conds, "LOWER(station) = LOWER(?)")
		args = append(args, s)
	}
	if p := strings.TrimSpace(f.Priority); p != "" {
		conds = append(conds, "priority = ?")
		args = append(args, strings.ToLower(p))
	}
	q := selectFeedbackSQL + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return scanFeedbackRows(rows)
}

// ListSince returns every feedback item created at or after since, any status.
func (r *FeedbackSQLite) ListSince(ctx context.Context, since time.Time) ([]models.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, selectFeedbackSQL+` WHERE created_at >= ? ORDER BY station ASC, created_at ASC`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("list feedback since %s: %w", since.Format(time.RFC3339), err)
	}
	return scanFeedbackRows(rows)
}

// Vote adds one up or down vote and hides the item once downvotes reach hideAt.
// Hidden items are left untouched. Returns sql.ErrNoRows when no active item
// has the id.
func (r *FeedbackSQLite) Vote(ctx context.Context, id string, up bool, hideAt int) error {
	upInc, downInc := 0, 1
	if up {
		upInc, downInc = 1, 0
	}
	res, err := r.db.ExecContext(ctx, voteFeedbackSQL, upInc, downInc, downInc, hideAt, id)
	if err != nil {
		return fmt.Errorf("vote feedback %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("vote feedback %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("vote feedback %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *FeedbackSQLite) Stats(ctx context.Context) (models.FeedbackStats, error) {
	var s models.FeedbackStats
	if err := r.db.QueryRowContext(ctx, feedbackStatsSQL).Scan(&s.TotalActive, &s.HighPriority); err != nil {
		return models.FeedbackStats{}, fmt.Errorf("feedback stats: %w", err)
	}
	return s, nil
}

func (r *FeedbackSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countFeedbackSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return n, nil
}

func scanFeedbackRows(rows *sql.Rows) ([]models.Feedback, error) {
	defer rows.Close()

	out := make([]models.Feedback, 0, 16)
	for rows.Next() {
		var (
			f      models.Feedback
			userID sql.NullInt64
		)
		if err := rows.Scan(&f.ID, &userID, &f.User, &f.Station, &f.Category, &f.Message,
			&f.CreatedAt, &f.Upvotes, &f.Downvotes, &f.Priority, &f.Status); err != nil {
			return nil, err
		}
		if userID.Valid {
			f.UserID = int(userID.Int64)
		}
		f.CreatedAt = f.CreatedAt.UTC()
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// IsNotFound reports whether err came from a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
