package models

import (
	"strings"
	"time"
)

type User struct {
	ID           int        `json:"id"`
	FullName     string     `json:"full_name"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PhoneNumber  string     `json:"phone_number"`
	IsFemale     bool       `json:"is_female"`
	PasswordHash string     `json:"-"` // don’t expose hash
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Session mirrors the marker the web client keeps in local storage.
type Session struct {
	Username   string    `json:"username"`
	IsLoggedIn bool      `json:"is_logged_in"`
	LoginTime  time.Time `json:"login_time"`
}

// DisplayName shortens "Priya Sharma" to "Priya S." for public listings.
func (u User) DisplayName() string {
	parts := strings.Fields(u.FullName)
	switch len(parts) {
	case 0:
		return u.Username
	case 1:
		return parts[0]
	}
	last := []rune(parts[len(parts)-1])
	return parts[0] + " " + string(last[:1]) + "."
}
