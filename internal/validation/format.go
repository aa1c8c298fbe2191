package validation

import (
	"regexp"
	"strings"
)

const (
	StrengthWeak   = "weak"
	StrengthMedium = "medium"
	StrengthStrong = "strong"
)

var (
	nonPhoneRe   = regexp.MustCompile(`[^\d+]`)
	lowerRe      = regexp.MustCompile(`[a-z]`)
	upperRe      = regexp.MustCompile(`[A-Z]`)
	specialRe    = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	sanitizeRepl = strings.NewReplacer("<", "", ">", "", "'", "", `"`, "", "&", "")
)

// FormatPhone renders "+91 98765 43210" or "98765 43210". Anything else is
// returned unchanged.
func FormatPhone(phone string) string {
	cleaned := nonPhoneRe.ReplaceAllString(phone, "")
	if rest, ok := strings.CutPrefix(cleaned, "+91"); ok && len(rest) == 10 {
		return "+91 " + rest[:5] + " " + rest[5:]
	}
	if len(cleaned) == 10 {
		return cleaned[:5] + " " + cleaned[5:]
	}
	return phone
}

// FormatAadhaar groups digits by four: "1234 5678 9012".
func FormatAadhaar(number string) string {
	cleaned := CleanAadhaar(number)
	if len(cleaned) > aadhaarLen {
		return number
	}
	var b strings.Builder
	for i := 0; i < len(cleaned); i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(cleaned[i])
	}
	return b.String()
}

// SanitizeInput drops characters that could break out of HTML attributes.
func SanitizeInput(s string) string {
	return sanitizeRepl.Replace(s)
}

// PasswordStrength scores length, lower, upper, digit and special characters.
func PasswordStrength(password string) string {
	score := 0
	if len(password) >= passwordMinLen {
		score++
	}
	for _, re := range []*regexp.Regexp{lowerRe, upperRe, digitRe, specialRe} {
		if re.MatchString(password) {
			score++
		}
	}
	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}

// Fields collects the first failure per form field.
type Fields map[string]string

// Check records err under field when it is non-nil.
func (f Fields) Check(field string, err error) {
	if err == nil {
		return
	}
	if _, exists := f[field]; !exists {
		f[field] = err.Error()
	}
}

// Err returns nil when no field failed.
func (f Fields) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &FieldsError{Fields: f}
}

// FieldsError carries every field message of a rejected form.
type FieldsError struct {
	Fields Fields
}

func (e *FieldsError) Error() string {
	return "validation failed"
}
