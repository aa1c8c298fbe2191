package service

import (
	"sort"
	"strings"

	"saferail/internal/models"
)

// Status thresholds of the station index.
const (
	unsafeCrowdPct = 70
	safeScore      = 86

	rankingSize  = 6
	forecastSize = 10
)

var trains = []string{
	"Virar Local",
	"Borivali Local",
	"Andheri Local",
	"Churchgate Local",
	"CST Local",
}

// Western line, south to north.
var stationIndex = []models.Station{
	{Name: "Churchgate", Crowd: 15, Safety: 92},
	{Name: "Marine Lines", Crowd: 25, Safety: 88},
	{Name: "Charni Road", Crowd: 35, Safety: 85},
	{Name: "Grant Road", Crowd: 45, Safety: 78},
	{Name: "Mumbai Central", Crowd: 65, Safety: 82},
	{Name: "Mahalaxmi", Crowd: 40, Safety: 86},
	{Name: "Lower Parel", Crowd: 70, Safety: 75},
	{Name: "Prabhadevi", Crowd: 55, Safety: 80},
	{Name: "Dadar", Crowd: 85, Safety: 70},
	{Name: "Matunga", Crowd: 45, Safety: 88},
	{Name: "Mahim", Crowd: 50, Safety: 84},
	{Name: "Bandra", Crowd: 75, Safety: 76},
	{Name: "Khar", Crowd: 35, Safety: 90},
	{Name: "Santacruz", Crowd: 40, Safety: 87},
	{Name: "Vile Parle", Crowd: 60, Safety: 82},
	{Name: "Andheri", Crowd: 80, Safety: 73},
}

// StationStatus derives safe/caution/unsafe from crowd percentage and safety score.
func StationStatus(crowd, safety int) string {
	switch {
	case crowd >= unsafeCrowdPct:
		return models.StationUnsafe
	case safety >= safeScore:
		return models.StationSafe
	default:
		return models.StationCaution
	}
}

type StationService struct {
	index []models.Station
	known map[string]struct{}
}

func NewStationService() *StationService {
	idx := make([]models.Station, len(stationIndex))
	known := make(map[string]struct{}, len(stationIndex))
	for i, st := range stationIndex {
		st.Status = StationStatus(st.Crowd, st.Safety)
		idx[i] = st
		known[strings.ToLower(st.Name)] = struct{}{}
	}
	return &StationService{index: idx, known: known}
}

// Index returns a copy of the full index.
func (s *StationService) Index() []models.Station {
	out := make([]models.Station, len(s.index))
	copy(out, s.index)
	return out
}

// Rankings lists the safest stations, best first.
func (s *StationService) Rankings() []models.Station {
	var out []models.Station
	for _, st := range s.index {
		if st.Status == models.StationSafe {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Safety > out[j].Safety })
	if len(out) > rankingSize {
		out = out[:rankingSize]
	}
	return out
}

func (s *StationService) Trains() []string {
	out := make([]string, len(trains))
	copy(out, trains)
	return out
}

// Forecast returns the first stations of the route for a known train.
func (s *StationService) Forecast(train string) ([]models.Station, error) {
	for _, t := range trains {
		if strings.EqualFold(t, strings.TrimSpace(train)) {
			n := forecastSize
			if n > len(s.index) {
				n = len(s.index)
			}
			out := make([]models.Station, n)
			copy(out, s.index[:n])
			return out, nil
		}
	}
	return nil, ErrUnknownTrain
}

func (s *StationService) IsKnownStation(name string) bool {
	_, ok := s.known[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
