// Package validation holds the form field rules shared by registration, profile
// editing, feedback and the contact form. Every rule is a pure function returning
// nil on success or an error whose message is safe to show next to the field.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmailRequired = errors.New("Email is required")
	ErrEmailFormat   = errors.New("Invalid email format")

	ErrPhoneRequired = errors.New("Phone number is required")
	ErrPhoneFormat   = errors.New("Invalid phone number format")

	ErrPasswordRequired = errors.New("Password is required")
	ErrPasswordShort    = errors.New("Password must be at least 8 characters")
	ErrPasswordLetter   = errors.New("Password must contain at least one letter")
	ErrPasswordDigit    = errors.New("Password must contain at least one number")

	ErrUsernameRequired     = errors.New("Username is required")
	ErrUsernameShort        = errors.New("Username must be at least 3 characters")
	ErrUsernameLong         = errors.New("Username must be no more than 20 characters")
	ErrUsernameCharset      = errors.New("Username can only contain letters, numbers, and underscores")
	ErrUsernameLeadingDigit = errors.New("Username cannot start with a number")

	ErrFullNameRequired = errors.New("Full name is required")
	ErrFullNameShort    = errors.New("Full name must be at least 2 characters")
	ErrFullNameLong     = errors.New("Full name must be no more than 50 characters")
	ErrFullNameCharset  = errors.New("Full name can only contain letters, spaces, periods, hyphens, and apostrophes")

	ErrAadhaarRequired = errors.New("Aadhaar number is required for gender verification")
	ErrAadhaarLength   = errors.New("Aadhaar must be exactly 12 digits")
	ErrAadhaarDigits   = errors.New("Aadhaar can only contain digits")
	ErrAadhaarInvalid  = errors.New("Invalid Aadhaar number")

	ErrConfirmRequired = errors.New("Please confirm your password")
	ErrConfirmMismatch = errors.New("Passwords do not match")
)

const (
	passwordMinLen = 8
	usernameMinLen = 3
	usernameMaxLen = 20
	fullNameMinLen = 2
	fullNameMaxLen = 50
	aadhaarLen     = 12
)

var (
	emailRe        = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneSepRe     = regexp.MustCompile(`[\s\-()]`)
	indianMobileRe = regexp.MustCompile(`^(\+91)?[6-9]\d{9}$`)
	letterRe       = regexp.MustCompile(`[a-zA-Z]`)
	digitRe        = regexp.MustCompile(`\d`)
	usernameRe     = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	fullNameRe     = regexp.MustCompile(`^[a-zA-Z\s.\-']+$`)
	whitespaceRe   = regexp.MustCompile(`\s`)
	allDigitsRe    = regexp.MustCompile(`^\d+$`)
)

// placeholder numbers people type to get past the form
var blockedAadhaar = map[string]struct{}{
	"000000000000": {},
	"111111111111": {},
}

func Email(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return ErrEmailFormat
	}
	return nil
}

// Phone accepts a 10 digit Indian mobile number, optionally prefixed with +91.
// Spaces, hyphens and parentheses are ignored.
func Phone(phone string) error {
	if phone == "" {
		return ErrPhoneRequired
	}
	if !indianMobileRe.MatchString(CleanPhone(phone)) {
		return ErrPhoneFormat
	}
	return nil
}

// CleanPhone strips the separators Phone ignores.
func CleanPhone(phone string) string {
	return phoneSepRe.ReplaceAllString(phone, "")
}

// Password enforces length, a letter and a digit. Special characters only
// raise PasswordStrength.
func Password(password string) error {
	switch {
	case password == "":
		return ErrPasswordRequired
	case utf8.RuneCountInString(password) < passwordMinLen:
		return ErrPasswordShort
	case !letterRe.MatchString(password):
		return ErrPasswordLetter
	case !digitRe.MatchString(password):
		return ErrPasswordDigit
	}
	return nil
}

func Username(username string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case username == "":
		return ErrUsernameRequired
	case n < usernameMinLen:
		return ErrUsernameShort
	case n > usernameMaxLen:
		return ErrUsernameLong
	case !usernameRe.MatchString(username):
		return ErrUsernameCharset
	case username[0] >= '0' && username[0] <= '9':
		return ErrUsernameLeadingDigit
	}
	return nil
}

func FullName(name string) error {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	switch {
	case trimmed == "":
		return ErrFullNameRequired
	case n < fullNameMinLen:
		return ErrFullNameShort
	case n > fullNameMaxLen:
		return ErrFullNameLong
	case !fullNameRe.MatchString(name):
		return ErrFullNameCharset
	}
	return nil
}

// AadhaarFormat checks shape only. It is not a checksum validation and the
// number must never be stored or logged by callers.
func AadhaarFormat(number string) error {
	if number == "" {
		return ErrAadhaarRequired
	}
	clean := CleanAadhaar(number)
	if len(clean) != aadhaarLen {
		return ErrAadhaarLength
	}
	if !allDigitsRe.MatchString(clean) {
		return ErrAadhaarDigits
	}
	if _, blocked := blockedAadhaar[clean]; blocked {
		return ErrAadhaarInvalid
	}
	return nil
}

// CleanAadhaar removes whitespace from a grouped number ("1234 5678 9012").
func CleanAadhaar(number string) string {
	return whitespaceRe.ReplaceAllString(number, "")
}

func PasswordConfirmation(password, confirm string) error {
	if confirm == "" {
		return ErrConfirmRequired
	}
	if password != confirm {
		return ErrConfirmMismatch
	}
	return nil
}
