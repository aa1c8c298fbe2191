// Package dataset reads the hourly station crowd/safety dataset.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"saferail/internal/models"
)

var (
	ErrHeader = errors.New("dataset: unexpected header")
	ErrEmpty  = errors.New("dataset: no rows")
)

var header = []string{"Station", "Time", "Crowd_Level", "Safety_Rating"}

// CrowdOrdinal maps Low/Medium/High onto 1/2/3. Unknown levels are 0.
func CrowdOrdinal(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	default:
		return 0
	}
}

// LoadFile opens path and parses it with Parse.
func LoadFile(path string) ([]models.StationReading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %q: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads "Station,Time,Crowd_Level,Safety_Rating" rows.
// Hour is taken from the HH part of Time.
func Parse(r io.Reader) ([]models.StationReading, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = len(header)

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, col := range header {
		if strings.TrimSpace(strings.TrimPrefix(head[i], "\ufeff")) != col {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrHeader, i+1, head[i], col)
		}
	}

	var out []models.StationReading
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rd, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rd)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

func parseRecord(rec []string) (models.StationReading, error) {
	station := strings.TrimSpace(rec[0])
	if station == "" {
		return models.StationReading{}, errors.New("empty station")
	}
	tm := strings.TrimSpace(rec[1])
	hh, _, ok := strings.Cut(tm, ":")
	if !ok {
		return models.StationReading{}, fmt.Errorf("bad time %q", tm)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return models.StationReading{}, fmt.Errorf("bad hour in %q", tm)
	}
	level := strings.TrimSpace(rec[2])
	if CrowdOrdinal(level) == 0 {
		return models.StationReading{}, fmt.Errorf("bad crowd level %q", level)
	}
	rating, err := strconv.Atoi(strings.TrimSpace(rec[3]))
	if err != nil {
		return models.StationReading{}, fmt.Errorf("bad safety rating %q", rec[3])
	}
	return models.StationReading{
		Station:      station,
		Time:         tm,
		Hour:         hour,
		CrowdLevel:   level,
		SafetyRating: rating,
	}, nil
}
