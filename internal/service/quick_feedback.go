package service

import (
	"context"
	"strings"
	"time"

	"saferail/internal/models"
	"saferail/internal/repository"

	"github.com/google/uuid"
)

var quickTypes = map[string]struct{}{
	"thumbs_up":   {},
	"thumbs_down": {},
	"alert":       {},
	"star":        {},
}

type QuickFeedbackService struct {
	repo repository.QuickFeedbackRepo
}

func NewQuickFeedbackService(repo repository.QuickFeedbackRepo) *QuickFeedbackService {
	return &QuickFeedbackService{repo: repo}
}

func (s *QuickFeedbackService) SubmitQuick(ctx context.Context, typ string, message *string) (models.QuickFeedback, error) {
	typ = strings.ToLower(strings.TrimSpace(typ))
	if _, ok := quickTypes[typ]; !ok {
		return models.QuickFeedback{}, ErrInvalidQuickType
	}
	f := models.QuickFeedback{
		ID:        uuid.NewString(),
		Type:      typ,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return models.QuickFeedback{}, err
	}
	return f, nil
}

func (s *QuickFeedbackService) ListQuick(ctx context.Context) ([]models.QuickFeedback, error) {
	return s.repo.List(ctx)
}

func (s *QuickFeedbackService) GetQuick(ctx context.Context, id string) (*models.QuickFeedback, error) {
	f, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrQuickNotFound
	}
	return f, nil
}

// DeleteQuick is idempotent.
func (s *QuickFeedbackService) DeleteQuick(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
