package service

import (
	"context"
	"errors"
	"strings"

	"saferail/internal/models"
	"saferail/internal/repository"
	"saferail/internal/validation"
)

type ProfileService struct {
	users repository.Authorization
}

func NewProfileService(users repository.Authorization) *ProfileService {
	return &ProfileService{users: users}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile changes email and/or phone number. Nothing else is mutable.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID int, in ProfileUpdate) (*models.User, error) {
	if in.Email == nil && in.PhoneNumber == nil {
		return nil, ErrNothingToUpdate
	}

	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := validation.Fields{}
	email, phone := u.Email, u.PhoneNumber
	if in.Email != nil {
		fields.Check("email", validation.Email(*in.Email))
		email = strings.TrimSpace(*in.Email)
	}
	if in.PhoneNumber != nil {
		fields.Check("phone_number", validation.Phone(*in.PhoneNumber))
		phone = validation.CleanPhone(*in.PhoneNumber)
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.users.UpdateContact(ctx, userID, email, phone); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	u.Email, u.PhoneNumber = email, phone
	return u, nil
}
