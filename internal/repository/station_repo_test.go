package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"saferail/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStationSQLite_ReplaceAll(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStationSQLite(db)

	readings := []models.StationReading{
		{Station: "Dadar", Time: "08:00", Hour: 8, CrowdLevel: "High", SafetyRating: 2},
		{Station: "Dadar", Time: "14:00", Hour: 14, CrowdLevel: "Low", SafetyRating: 4},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteReadingsSQL)).WillReturnResult(sqlmock.NewResult(0, 10))
	prep := mock.ExpectPrepare(regexp.QuoteMeta(insertReadingSQL))
	for _, rd := range readings {
		prep.ExpectExec().
			WithArgs(rd.Station, rd.Time, rd.Hour, rd.CrowdLevel, rd.SafetyRating).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := repo.ReplaceAll(context.Background(), readings); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
}

func TestStationSQLite_ReplaceAll_RollsBackOnError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStationSQLite(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteReadingsSQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare(regexp.QuoteMeta(insertReadingSQL)).
		ExpectExec().
		WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), []models.StationReading{{Station: "Dadar", Time: "08:00", Hour: 8, CrowdLevel: "High", SafetyRating: 2}})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestStationSQLite_ByStation(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStationSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectReadingsByStn)).
		WithArgs("dadar").
		WillReturnRows(sqlmock.NewRows([]string{"station", "time", "hour", "crowd_level", "safety_rating"}).
			AddRow("Dadar", "08:00", 8, "High", 2).
			AddRow("Dadar", "09:00", 9, "Medium", 3))

	got, err := repo.ByStation(context.Background(), "dadar")
	if err != nil {
		t.Fatalf("ByStation: %v", err)
	}
	if len(got) != 2 || got[0].Station != "Dadar" || got[1].CrowdLevel != "Medium" {
		t.Fatalf("unexpected readings: %+v", got)
	}
}

func TestStationSQLite_Names(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStationSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectStationNames)).
		WillReturnRows(sqlmock.NewRows([]string{"station"}).AddRow("Andheri").AddRow("Dadar"))

	got, err := repo.Names(context.Background())
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if len(got) != 2 || got[0] != "Andheri" {
		t.Fatalf("unexpected names: %v", got)
	}
}
