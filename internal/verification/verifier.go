// Package verification performs the one-time identity-document gender check
// used during registration.
//
// The document number is handled as a byte slice so it can be wiped once the
// result is known. Implementations must never log or persist it.
package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saferail/internal/validation"
)

// DefaultDelay is how long the mock provider takes to answer.
const DefaultDelay = 1500 * time.Millisecond

var (
	// ErrInvalidFormat wraps the validation error for a malformed number.
	ErrInvalidFormat = errors.New("invalid document number format")
	// ErrRejected is returned when the provider does not recognise the number.
	ErrRejected = errors.New("Invalid Aadhaar number")
)

// Result is the provider's answer for a well-formed number.
type Result struct {
	Valid  bool `json:"is_valid"`
	Female bool `json:"is_female"`
}

// Verifier checks a document number with an identity provider.
// Verify wipes number before returning, on every path.
type Verifier interface {
	Verify(ctx context.Context, number []byte) (Result, error)
}

// MockVerifier stands in for the national identity API. It answers after a
// fixed delay and derives the gender claim from the parity of the last digit.
type MockVerifier struct {
	Delay time.Duration
}

func NewMockVerifier(delay time.Duration) *MockVerifier {
	if delay < 0 {
		delay = 0
	}
	return &MockVerifier{Delay: delay}
}

var _ Verifier = (*MockVerifier)(nil)

func (m *MockVerifier) Verify(ctx context.Context, number []byte) (Result, error) {
	defer Wipe(number)

	clean := validation.CleanAadhaar(string(number))
	if err := validation.AadhaarFormat(string(number)); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-t.C:
		}
	}

	if clean[:3] == "000" || clean[:3] == "999" {
		return Result{}, ErrRejected
	}

	last := clean[len(clean)-1] - '0'
	return Result{Valid: true, Female: last%2 == 0}, nil
}

// Wipe zeroes b in place.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
