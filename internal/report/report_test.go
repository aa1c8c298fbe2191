package report

import (
	"bytes"
	"os"
	"testing"
	"time"

	"saferail/internal/models"

	"github.com/xuri/excelize/v2"
)

func sampleData() Data {
	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	n := 2
	return Data{
		From: from,
		To:   from.AddDate(0, 0, 7),
		Feedback: []models.Feedback{
			{Station: "Dadar", Category: "Safety Concern", Priority: models.PriorityHigh, Status: models.FeedbackActive, Upvotes: 15, Downvotes: 2, CreatedAt: from},
			{Station: "Dadar", Category: "Positive Feedback", Priority: models.PriorityLow, Status: models.FeedbackActive, Upvotes: 8, CreatedAt: from},
			{Station: "Andheri", Category: "Harassment", Priority: models.PriorityHigh, Status: models.FeedbackHidden, Downvotes: 5, CreatedAt: from},
		},
		Alerts: []models.Alert{
			{Source: models.AlertSourceCompartment, Train: "Virar Fast", PeopleCount: &n, Status: models.AlertUnsafe, Message: "Constable dispatched", CreatedAt: from},
		},
	}
}

func TestWrite_Sheets(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleData()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{SheetByStation, SheetHighPriority, SheetAlerts}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Fatalf("sheets = %v, want %v", sheets, want)
		}
	}

	rows, err := f.GetRows(SheetByStation)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// title, header, Dadar (2 reports), Andheri (1)
	if len(rows) != 4 {
		t.Fatalf("by-station rows = %d, want 4: %v", len(rows), rows)
	}
	if rows[2][0] != "Dadar" || rows[2][1] != "2" || rows[2][2] != "1" {
		t.Fatalf("unexpected Dadar row: %v", rows[2])
	}
	if rows[3][0] != "Andheri" || rows[3][3] != "1" {
		t.Fatalf("unexpected Andheri row: %v", rows[3])
	}

	high, _ := f.GetRows(SheetHighPriority)
	if len(high) != 3 {
		t.Fatalf("high priority rows = %d, want 3", len(high))
	}

	alerts, _ := f.GetRows(SheetAlerts)
	if len(alerts) != 2 || alerts[1][5] != "2" {
		t.Fatalf("unexpected alerts sheet: %v", alerts)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteFile(dir, sampleData())
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if want := "weekly_report_2025-03-03.xlsx"; path[len(path)-len(want):] != want {
		t.Fatalf("unexpected file name %s", path)
	}
}

func TestWeekStartAndNextRun(t *testing.T) {
	// Wednesday
	now := time.Date(2025, 3, 5, 15, 30, 0, 0, time.UTC)

	if got, want := WeekStart(now), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("WeekStart = %v, want %v", got, want)
	}
	if got, want := NextRun(now), time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("NextRun = %v, want %v", got, want)
	}

	sunday := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	if got, want := NextRun(sunday), sunday.AddDate(0, 0, 7); !got.Equal(want) {
		t.Fatalf("NextRun at run time = %v, want %v", got, want)
	}
	if got := WeekStart(sunday); !got.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Sunday belongs to the week starting Monday, got %v", got)
	}
}
