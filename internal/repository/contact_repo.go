package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"saferail/internal/models"
)

type EmergencyContactSQLite struct {
	db *sql.DB
}

func NewEmergencyContactSQLite(db *sql.DB) *EmergencyContactSQLite {
	return &EmergencyContactSQLite{db: db}
}

var _ EmergencyContactRepo = (*EmergencyContactSQLite)(nil)

const (
	insertEmergencyContactSQL = `INSERT INTO emergency_contacts (user_id, name, number, created_at) VALUES (?, ?, ?, ?)`
	listEmergencyContactsSQL  = `SELECT id, user_id, name, number, created_at FROM emergency_contacts WHERE user_id = ? ORDER BY id ASC`
	deleteEmergencyContactSQL = `DELETE FROM emergency_contacts WHERE id = ? AND user_id = ?`
)

func (r *EmergencyContactSQLite) Add(ctx context.Context, c models.EmergencyContact) (int, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertEmergencyContactSQL, c.UserID, c.Name, c.Number, c.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert emergency contact for user %d: %w", c.UserID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for emergency contact: %w", err)
	}
	return int(id), nil
}

func (r *EmergencyContactSQLite) List(ctx context.Context, userID int) ([]models.EmergencyContact, error) {
	rows, err := r.db.QueryContext(ctx, listEmergencyContactsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list emergency contacts for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.EmergencyContact, 0, 4)
	for rows.Next() {
		var c models.EmergencyContact
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Number, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete reports whether a contact owned by userID was removed.
func (r *EmergencyContactSQLite) Delete(ctx context.Context, userID, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteEmergencyContactSQL, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete emergency contact %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete emergency contact %d: %w", id, err)
	}
	return n > 0, nil
}

type ContactMessageSQLite struct {
	db *sql.DB
}

func NewContactMessageSQLite(db *sql.DB) *ContactMessageSQLite {
	return &ContactMessageSQLite{db: db}
}

var _ ContactMessageRepo = (*ContactMessageSQLite)(nil)

const insertContactMessageSQL = `INSERT INTO contact_messages (name, email, subject, category, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`

func (r *ContactMessageSQLite) Create(ctx context.Context, m models.ContactMessage) (int, error) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertContactMessageSQL,
		m.Name, m.Email, nullString(m.Subject), nullString(m.Category), m.Message, m.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert contact message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for contact message: %w", err)
	}
	return int(id), nil
}
