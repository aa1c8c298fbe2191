package service

import (
	"errors"
	"testing"

	"saferail/internal/models"
)

func TestStationStatus(t *testing.T) {
	tests := []struct {
		crowd, safety int
		want          string
	}{
		{crowd: 15, safety: 92, want: models.StationSafe},
		{crowd: 40, safety: 86, want: models.StationSafe},
		{crowd: 35, safety: 85, want: models.StationCaution},
		{crowd: 69, safety: 99, want: models.StationSafe},
		{crowd: 70, safety: 99, want: models.StationUnsafe},
		{crowd: 85, safety: 70, want: models.StationUnsafe},
	}
	for _, tt := range tests {
		if got := StationStatus(tt.crowd, tt.safety); got != tt.want {
			t.Errorf("StationStatus(%d, %d) = %s, want %s", tt.crowd, tt.safety, got, tt.want)
		}
	}
}

func TestStationService_Index(t *testing.T) {
	svc := NewStationService()

	idx := svc.Index()
	if len(idx) != 16 {
		t.Fatalf("expected 16 stations, got %d", len(idx))
	}
	if idx[0].Name != "Churchgate" || idx[0].Status != models.StationSafe {
		t.Fatalf("first station = %+v", idx[0])
	}

	idx[0].Name = "changed"
	if svc.Index()[0].Name != "Churchgate" {
		t.Fatalf("Index must return a copy")
	}
}

func TestStationService_Rankings(t *testing.T) {
	got := NewStationService().Rankings()

	want := []string{"Churchgate", "Khar", "Marine Lines", "Matunga", "Santacruz", "Mahalaxmi"}
	if len(got) != len(want) {
		t.Fatalf("expected %d stations, got %d: %+v", len(want), len(got), got)
	}
	for i, st := range got {
		if st.Name != want[i] {
			t.Errorf("rank %d = %s, want %s", i+1, st.Name, want[i])
		}
		if st.Status != models.StationSafe {
			t.Errorf("%s is %s", st.Name, st.Status)
		}
	}
}

func TestStationService_Forecast(t *testing.T) {
	svc := NewStationService()

	got, err := svc.Forecast(" virar local ")
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if len(got) != 10 || got[9].Name != "Matunga" {
		t.Fatalf("unexpected forecast %+v", got)
	}

	if _, err := svc.Forecast("Deccan Queen"); !errors.Is(err, ErrUnknownTrain) {
		t.Fatalf("expected ErrUnknownTrain, got %v", err)
	}
}

func TestStationService_IsKnownStation(t *testing.T) {
	svc := NewStationService()
	for name, want := range map[string]bool{"Dadar": true, " vile parle ": true, "Thane": false, "": false} {
		if got := svc.IsKnownStation(name); got != want {
			t.Errorf("IsKnownStation(%q) = %v", name, got)
		}
	}
}
