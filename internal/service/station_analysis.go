package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"saferail/internal/models"
	"saferail/internal/repository"
)

type StationAnalysisService struct {
	repo repository.StationRepo
}

func NewStationAnalysisService(repo repository.StationRepo) *StationAnalysisService {
	return &StationAnalysisService{repo: repo}
}

// LoadDataset replaces the stored readings.
func (s *StationAnalysisService) LoadDataset(ctx context.Context, readings []models.StationReading) error {
	if len(readings) == 0 {
		return ErrDatasetNotLoaded
	}
	if err := s.repo.ReplaceAll(ctx, readings); err != nil {
		return fmt.Errorf("load station dataset: %w", err)
	}
	return nil
}

// StationNames returns sorted unique names, optionally narrowed by a
// case-insensitive prefix.
func (s *StationAnalysisService) StationNames(ctx context.Context, prefix string) ([]string, error) {
	names, err := s.repo.Names(ctx)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrDatasetNotLoaded
	}

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if prefix == "" || strings.HasPrefix(strings.ToLower(n), prefix) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Analysis returns the hourly readings of one station.
func (s *StationAnalysisService) Analysis(ctx context.Context, name string) ([]models.StationReading, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrStationNotFound
	}
	readings, err := s.repo.ByStation(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		names, err := s.repo.Names(ctx)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, ErrDatasetNotLoaded
		}
		return nil, ErrStationNotFound
	}
	return readings, nil
}
