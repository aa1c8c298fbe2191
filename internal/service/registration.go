package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"saferail/internal/models"
	"saferail/internal/repository"
	"saferail/internal/validation"
	"saferail/internal/verification"
)

type RegistrationService struct {
	users    repository.Authorization
	verifier verification.Verifier
	tokens   *tokenIssuer
}

func NewRegistrationService(users repository.Authorization, v verification.Verifier, tokens *tokenIssuer) *RegistrationService {
	return &RegistrationService{users: users, verifier: v, tokens: tokens}
}

// VerifyGender runs the identity check and returns a short-lived ticket for
// SignUp. The number is wiped by the verifier on every path.
func (s *RegistrationService) VerifyGender(ctx context.Context, aadhaar []byte) (string, error) {
	res, err := s.verifier.Verify(ctx, aadhaar)
	if err != nil {
		return "", err
	}
	if !res.Valid {
		return "", verification.ErrRejected
	}
	if !res.Female {
		return "", ErrNotFemale
	}
	ticket, err := s.tokens.issueTicket()
	if err != nil {
		return "", fmt.Errorf("sign ticket: %w", err)
	}
	return ticket, nil
}

// SignUp validates the whole form, checks the ticket and stores the user.
// Field errors come back together as *validation.FieldsError.
func (s *RegistrationService) SignUp(ctx context.Context, in SignUpInput) (int, error) {
	fields := validation.Fields{}
	fields.Check("full_name", validation.FullName(in.FullName))
	fields.Check("username", validation.Username(in.Username))
	fields.Check("phone_number", validation.Phone(in.PhoneNumber))
	fields.Check("email", validation.Email(in.Email))
	fields.Check("password", validation.Password(in.Password))
	fields.Check("confirm_password", validation.PasswordConfirmation(in.Password, in.ConfirmPassword))
	if err := fields.Err(); err != nil {
		return 0, err
	}

	if err := s.tokens.checkTicket(in.VerificationTicket); err != nil {
		return 0, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.users.Create(ctx, models.User{
		FullName:     strings.TrimSpace(in.FullName),
		Username:     strings.ToLower(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PhoneNumber:  validation.CleanPhone(in.PhoneNumber),
		IsFemale:     true,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	return id, nil
}
