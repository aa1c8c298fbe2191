// Package report renders the weekly safety report workbook.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"saferail/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetByStation    = "By Station"
	SheetHighPriority = "High Priority"
	SheetAlerts       = "Alerts"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Data is everything that goes into one week's report.
type Data struct {
	From     time.Time
	To       time.Time
	Feedback []models.Feedback
	Alerts   []models.Alert
}

type stationRow struct {
	station   string
	total     int
	high      int
	hidden    int
	upvotes   int
	downvotes int
}

// WeekStart returns Monday 00:00 of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextRun returns the next Sunday 23:59 strictly after now.
func NextRun(now time.Time) time.Time {
	daysToSunday := (7 - int(now.Weekday())) % 7
	y, m, d := now.AddDate(0, 0, daysToSunday).Date()
	run := time.Date(y, m, d, 23, 59, 0, 0, now.Location())
	if !run.After(now) {
		run = run.AddDate(0, 0, 7)
	}
	return run
}

// FileName is the name a report for the week starting at from is saved under.
func FileName(from time.Time) string {
	return fmt.Sprintf("weekly_report_%s.xlsx", from.Format("2006-01-02"))
}

// Build renders d into a new workbook.
func Build(d Data) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetByStation)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := writeByStation(f, bold, d); err != nil {
		return nil, err
	}
	if err := writeHighPriority(f, bold, d.Feedback); err != nil {
		return nil, err
	}
	if err := writeAlerts(f, bold, d.Alerts); err != nil {
		return nil, err
	}
	return f, nil
}

// Write renders d straight into w.
func Write(w io.Writer, d Data) error {
	f, err := Build(d)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the report into dir and returns its path.
func WriteFile(dir string, d Data) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	f, err := Build(d)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path := filepath.Join(dir, FileName(d.From))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func writeByStation(f *excelize.File, bold int, d Data) error {
	title := fmt.Sprintf("Week %s to %s", d.From.Format("2006-01-02"), d.To.Format("2006-01-02"))
	if err := f.SetCellValue(SheetByStation, "A1", title); err != nil {
		return err
	}
	header := []any{"Station", "Reports", "High priority", "Hidden", "Upvotes", "Downvotes"}
	if err := writeHeader(f, SheetByStation, 2, bold, header); err != nil {
		return err
	}

	byStation := make(map[string]*stationRow)
	for _, fb := range d.Feedback {
		key := strings.TrimSpace(fb.Station)
		r, ok := byStation[key]
		if !ok {
			r = &stationRow{station: key}
			byStation[key] = r
		}
		r.total++
		r.upvotes += fb.Upvotes
		r.downvotes += fb.Downvotes
		if fb.Priority == models.PriorityHigh {
			r.high++
		}
		if fb.Status == models.FeedbackHidden {
			r.hidden++
		}
	}
	rows := make([]*stationRow, 0, len(byStation))
	for _, r := range byStation {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].total != rows[j].total {
			return rows[i].total > rows[j].total
		}
		return rows[i].station < rows[j].station
	})

	for i, r := range rows {
		if err := setRow(f, SheetByStation, i+3, []any{r.station, r.total, r.high, r.hidden, r.upvotes, r.downvotes}); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetByStation, "A", "A", 22)
}

func writeHighPriority(f *excelize.File, bold int, feedback []models.Feedback) error {
	if _, err := f.NewSheet(SheetHighPriority); err != nil {
		return fmt.Errorf("create sheet %q: %w", SheetHighPriority, err)
	}
	header := []any{"Time", "Station", "Category", "User", "Message", "Upvotes", "Downvotes", "Status"}
	if err := writeHeader(f, SheetHighPriority, 1, bold, header); err != nil {
		return err
	}
	row := 2
	for _, fb := range feedback {
		if fb.Priority != models.PriorityHigh {
			continue
		}
		vals := []any{fb.CreatedAt.Format(time.RFC3339), fb.Station, fb.Category, fb.User, fb.Message, fb.Upvotes, fb.Downvotes, fb.Status}
		if err := setRow(f, SheetHighPriority, row, vals); err != nil {
			return err
		}
		row++
	}
	return f.SetColWidth(SheetHighPriority, "E", "E", 50)
}

func writeAlerts(f *excelize.File, bold int, alerts []models.Alert) error {
	if _, err := f.NewSheet(SheetAlerts); err != nil {
		return fmt.Errorf("create sheet %q: %w", SheetAlerts, err)
	}
	header := []any{"Time", "Source", "Train", "Compartment", "Station", "People", "Status", "Message"}
	if err := writeHeader(f, SheetAlerts, 1, bold, header); err != nil {
		return err
	}
	for i, a := range alerts {
		var people any
		if a.PeopleCount != nil {
			people = *a.PeopleCount
		}
		vals := []any{a.CreatedAt.Format(time.RFC3339), a.Source, a.Train, a.Compartment, a.Station, people, a.Status, a.Message}
		if err := setRow(f, SheetAlerts, i+2, vals); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetAlerts, "H", "H", 50)
}

func writeHeader(f *excelize.File, sheet string, row, style int, vals []any) error {
	if err := setRow(f, sheet, row, vals); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, row, row, style); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
