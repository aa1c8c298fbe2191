package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"saferail/internal/models"
)

func analysisReadings() []models.StationReading {
	return []models.StationReading{
		{Station: "Dadar", Time: "08:00", Hour: 8, CrowdLevel: "High", SafetyRating: 2},
		{Station: "Dadar", Time: "23:00", Hour: 23, CrowdLevel: "Low", SafetyRating: 3},
		{Station: "Bandra", Time: "08:00", Hour: 8, CrowdLevel: "Medium", SafetyRating: 4},
		{Station: "Borivali", Time: "08:00", Hour: 8, CrowdLevel: "Medium", SafetyRating: 4},
	}
}

func TestStationAnalysis_NotLoaded(t *testing.T) {
	svc := NewStationAnalysisService(&fakeStationRepo{})
	ctx := context.Background()

	if _, err := svc.StationNames(ctx, ""); !errors.Is(err, ErrDatasetNotLoaded) {
		t.Fatalf("StationNames: expected ErrDatasetNotLoaded, got %v", err)
	}
	if _, err := svc.Analysis(ctx, "Dadar"); !errors.Is(err, ErrDatasetNotLoaded) {
		t.Fatalf("Analysis: expected ErrDatasetNotLoaded, got %v", err)
	}
	if err := svc.LoadDataset(ctx, nil); !errors.Is(err, ErrDatasetNotLoaded) {
		t.Fatalf("LoadDataset(nil): expected ErrDatasetNotLoaded, got %v", err)
	}
}

func TestStationAnalysis_Names(t *testing.T) {
	svc := NewStationAnalysisService(&fakeStationRepo{})
	ctx := context.Background()
	if err := svc.LoadDataset(ctx, analysisReadings()); err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}

	tests := map[string][]string{
		"":    {"Bandra", "Borivali", "Dadar"},
		"b":   {"Bandra", "Borivali"},
		" BO": {"Borivali"},
		"x":   {},
	}
	for prefix, want := range tests {
		got, err := svc.StationNames(ctx, prefix)
		if err != nil {
			t.Fatalf("StationNames(%q): %v", prefix, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("StationNames(%q) = %v, want %v", prefix, got, want)
		}
	}
}

func TestStationAnalysis_Analysis(t *testing.T) {
	svc := NewStationAnalysisService(&fakeStationRepo{readings: analysisReadings()})
	ctx := context.Background()

	got, err := svc.Analysis(ctx, "dadar")
	if err != nil {
		t.Fatalf("Analysis: %v", err)
	}
	if len(got) != 2 || got[1].Hour != 23 {
		t.Fatalf("unexpected readings %+v", got)
	}

	if _, err := svc.Analysis(ctx, "Thane"); !errors.Is(err, ErrStationNotFound) {
		t.Fatalf("expected ErrStationNotFound, got %v", err)
	}
	if _, err := svc.Analysis(ctx, "  "); !errors.Is(err, ErrStationNotFound) {
		t.Fatalf("blank name: expected ErrStationNotFound, got %v", err)
	}
}

func TestStationAnalysis_LoadError(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewStationAnalysisService(&fakeStationRepo{err: boom})

	if err := svc.LoadDataset(context.Background(), analysisReadings()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
