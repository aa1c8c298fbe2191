package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"saferail/internal/models"
)

type AlertSQLite struct {
	db *sql.DB
}

func NewAlertSQLite(db *sql.DB) *AlertSQLite { return &AlertSQLite{db: db} }

var _ AlertRepo = (*AlertSQLite)(nil)

const (
	insertAlertSQL = `INSERT INTO alerts (id, created_at, source, username, train, compartment, station, lat, lon, people_count, status, message, image) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectAlertSQL = `SELECT id, created_at, source, username, train, compartment, station, lat, lon, people_count, status, message, image FROM alerts`
)

func (r *AlertSQLite) Create(ctx context.Context, a models.Alert) error {
	var people sql.NullInt64
	if a.PeopleCount != nil {
		people = sql.NullInt64{Int64: int64(*a.PeopleCount), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, insertAlertSQL,
		a.ID, a.CreatedAt.UTC(), a.Source,
		nullString(a.Username), nullString(a.Train), nullString(a.Compartment), nullString(a.Station),
		nullString(a.Lat), nullString(a.Lon), people, a.Status, a.Message, nullString(a.Image))
	if err != nil {
		return fmt.Errorf("insert alert %s: %w", a.ID, err)
	}
	return nil
}

// ListRecent returns up to limit alerts, newest first.
func (r *AlertSQLite) ListRecent(ctx context.Context, limit int) ([]models.Alert, error) {
	rows, err := r.db.QueryContext(ctx, selectAlertSQL+` ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return scanAlertRows(rows)
}

// ListSince returns alerts created at or after since, oldest first.
func (r *AlertSQLite) ListSince(ctx context.Context, since time.Time) ([]models.Alert, error) {
	rows, err := r.db.QueryContext(ctx, selectAlertSQL+` WHERE created_at >= ? ORDER BY created_at ASC`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("list alerts since %s: %w", since.Format(time.RFC3339), err)
	}
	return scanAlertRows(rows)
}

func scanAlertRows(rows *sql.Rows) ([]models.Alert, error) {
	defer rows.Close()

	out := make([]models.Alert, 0, 16)
	for rows.Next() {
		var (
			a           models.Alert
			username    sql.NullString
			train       sql.NullString
			compartment sql.NullString
			station     sql.NullString
			lat         sql.NullString
			lon         sql.NullString
			image       sql.NullString
			people      sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.CreatedAt, &a.Source, &username, &train, &compartment,
			&station, &lat, &lon, &people, &a.Status, &a.Message, &image); err != nil {
			return nil, err
		}
		a.CreatedAt = a.CreatedAt.UTC()
		a.Username = username.String
		a.Train = train.String
		a.Compartment = compartment.String
		a.Station = station.String
		a.Lat = lat.String
		a.Lon = lon.String
		a.Image = image.String
		if people.Valid {
			n := int(people.Int64)
			a.PeopleCount = &n
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
