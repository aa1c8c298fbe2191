package repository

import (
	"context"
	"database/sql"
	"fmt"

	"saferail/internal/models"
)

type StationSQLite struct {
	db *sql.DB
}

func NewStationSQLite(db *sql.DB) *StationSQLite { return &StationSQLite{db: db} }

var _ StationRepo = (*StationSQLite)(nil)

const (
	deleteReadingsSQL   = `DELETE FROM station_readings`
	insertReadingSQL    = `INSERT INTO station_readings (station, time, hour, crowd_level, safety_rating) VALUES (?, ?, ?, ?, ?)`
	selectStationNames  = `SELECT DISTINCT station FROM station_readings ORDER BY station ASC`
	selectReadingsByStn = `SELECT station, time, hour, crowd_level, safety_rating FROM station_readings WHERE LOWER(station) = LOWER(?) ORDER BY hour ASC, time ASC`
)

// ReplaceAll swaps the dataset atomically.
func (r *StationSQLite) ReplaceAll(ctx context.Context, readings []models.StationReading) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin station import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteReadingsSQL); err != nil {
		return fmt.Errorf("clear station readings: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertReadingSQL)
	if err != nil {
		return fmt.Errorf("prepare station insert: %w", err)
	}
	defer stmt.Close()

	for _, rd := range readings {
		if _, err := stmt.ExecContext(ctx, rd.Station, rd.Time, rd.Hour, rd.CrowdLevel, rd.SafetyRating); err != nil {
			return fmt.Errorf("insert reading %s@%s: %w", rd.Station, rd.Time, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit station import: %w", err)
	}
	return nil
}

func (r *StationSQLite) Names(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectStationNames)
	if err != nil {
		return nil, fmt.Errorf("list station names: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// ByStation matches the name case-insensitively.
func (r *StationSQLite) ByStation(ctx context.Context, name string) ([]models.StationReading, error) {
	rows, err := r.db.QueryContext(ctx, selectReadingsByStn, name)
	if err != nil {
		return nil, fmt.Errorf("select readings for %q: %w", name, err)
	}
	defer rows.Close()

	var out []models.StationReading
	for rows.Next() {
		var rd models.StationReading
		if err := rows.Scan(&rd.Station, &rd.Time, &rd.Hour, &rd.CrowdLevel, &rd.SafetyRating); err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}
