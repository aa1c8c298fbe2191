package service

import (
	"context"
	"strings"
	"time"

	"saferail/internal/models"
	"saferail/internal/repository"
	"saferail/internal/validation"
)

type ContactService struct {
	repo repository.ContactMessageRepo
}

func NewContactService(repo repository.ContactMessageRepo) *ContactService {
	return &ContactService{repo: repo}
}

// SubmitContact validates and stores a contact-form message.
func (s *ContactService) SubmitContact(ctx context.Context, m models.ContactMessage) (int, error) {
	m.Name = strings.TrimSpace(validation.SanitizeInput(m.Name))
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(validation.SanitizeInput(m.Subject))
	m.Category = strings.TrimSpace(m.Category)
	m.Message = strings.TrimSpace(validation.SanitizeInput(m.Message))

	fields := validation.Fields{}
	if m.Name == "" {
		fields["name"] = "Name is required"
	}
	fields.Check("email", validation.Email(m.Email))
	if m.Message == "" {
		fields["message"] = "Message is required"
	}
	if err := fields.Err(); err != nil {
		return 0, err
	}

	m.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, m)
}
