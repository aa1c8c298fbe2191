package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"saferail/internal/models"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		people     int
		wantStatus string
		wantMsg    string
	}{
		{people: 0, wantStatus: models.AlertUnsafe, wantMsg: "Unsafe: Only 0 person(s). Constable dispatched."},
		{people: 4, wantStatus: models.AlertUnsafe, wantMsg: "Unsafe: Only 4 person(s). Constable dispatched."},
		{people: 5, wantStatus: models.AlertUnsafe, wantMsg: "Unsafe: 5 people. Constable requested."},
		{people: 10, wantStatus: models.AlertUnsafe, wantMsg: "Unsafe: 10 people. Constable requested."},
		{people: 11, wantStatus: models.AlertReject, wantMsg: "Crowded: 11 people. Request rejected."},
	}
	for _, tt := range tests {
		status, msg := Decide(tt.people)
		if status != tt.wantStatus || msg != tt.wantMsg {
			t.Errorf("Decide(%d) = %q, %q", tt.people, status, msg)
		}
	}
}

func TestSimulatedCounter(t *testing.T) {
	c := NewSimulatedCounter(7)
	for i := 0; i < 100; i++ {
		n, err := c.Count(context.Background(), "")
		if err != nil {
			t.Fatalf("Count: %v", err)
		}
		if n < 0 || n > c.Max {
			t.Fatalf("count %d out of range", n)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Count(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCompartment_Analyze(t *testing.T) {
	tests := []struct {
		name         string
		people       int
		wantStatus   string
		wantDispatch bool
	}{
		{name: "nearly empty", people: 2, wantStatus: models.AlertUnsafe, wantDispatch: true},
		{name: "crowded", people: 14, wantStatus: models.AlertReject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			events := &recordingEvents{}
			alerts := &fakeAlertRepo{}
			svc := NewCompartmentService(fixedCounter{n: tt.people}, NewAlertService(alerts, NewHub()), events, dir, nil)

			res, err := svc.Analyze(context.Background(), CompartmentUpload{
				Image:       strings.NewReader("jpeg bytes"),
				Filename:    "../../coach 4.jpg",
				Train:       "Virar Local",
				Compartment: "Ladies 1",
				Username:    "priya",
			})
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if res.PeopleCount != tt.people || res.Status != tt.wantStatus || res.AlertID == "" {
				t.Fatalf("unexpected result %+v", res)
			}
			if got := len(events.ofType(models.EventConstableDispatch)) == 1; got != tt.wantDispatch {
				t.Fatalf("dispatch recorded = %v", got)
			}

			if len(alerts.alerts) != 1 {
				t.Fatalf("expected one alert, got %d", len(alerts.alerts))
			}
			a := alerts.alerts[0]
			if a.PeopleCount == nil || *a.PeopleCount != tt.people {
				t.Fatalf("alert people count = %v", a.PeopleCount)
			}
			if !strings.HasSuffix(a.Image, "_coach_4.jpg") || strings.Contains(a.Image, "..") {
				t.Fatalf("unsafe stored name %q", a.Image)
			}
			data, err := os.ReadFile(filepath.Join(dir, a.Image))
			if err != nil || string(data) != "jpeg bytes" {
				t.Fatalf("stored file = %q, %v", data, err)
			}
		})
	}
}

func TestCompartment_Analyze_NoImage(t *testing.T) {
	svc := NewCompartmentService(fixedCounter{}, NewAlertService(&fakeAlertRepo{}, NewHub()), &recordingEvents{}, t.TempDir(), nil)

	if _, err := svc.Analyze(context.Background(), CompartmentUpload{Filename: "a.jpg"}); !errors.Is(err, ErrImageRequired) {
		t.Fatalf("expected ErrImageRequired, got %v", err)
	}
	if _, err := svc.Analyze(context.Background(), CompartmentUpload{Image: strings.NewReader("x")}); !errors.Is(err, ErrImageRequired) {
		t.Fatalf("expected ErrImageRequired, got %v", err)
	}
}
