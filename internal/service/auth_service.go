package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"saferail/internal/models"
	"saferail/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL  = 24 * time.Hour
	defaultTicketTTL = 15 * time.Minute

	ticketSubject = "gender-verified"
)

// Claims defines session JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// tokenIssuer signs session tokens and verification tickets with one HMAC key.
type tokenIssuer struct {
	key       []byte
	tokenTTL  time.Duration
	ticketTTL time.Duration
	now       func() time.Time
}

func newTokenIssuer(secret string, tokenTTL, ticketTTL time.Duration) *tokenIssuer {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if ticketTTL <= 0 {
		ticketTTL = defaultTicketTTL
	}
	return &tokenIssuer{key: []byte(secret), tokenTTL: tokenTTL, ticketTTL: ticketTTL, now: time.Now}
}

func (t *tokenIssuer) issueToken(u *models.User) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   u.ID,
		Username: u.Username,
	})
	return token.SignedString(t.key)
}

func (t *tokenIssuer) parseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, t.keyFunc, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// issueTicket proves a passed identity check without carrying the document number.
func (t *tokenIssuer) issueTicket() (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   ticketSubject,
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ticketTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	return token.SignedString(t.key)
}

func (t *tokenIssuer) checkTicket(ticket string) error {
	if strings.TrimSpace(ticket) == "" {
		return ErrTicketRequired
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(ticket, claims, t.keyFunc,
		jwt.WithSubject(ticketSubject), jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return ErrTicketRequired
	}
	return nil
}

func (t *tokenIssuer) keyFunc(token *jwt.Token) (interface{}, error) {
	// Ensure HMAC signing is used
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return t.key, nil
}

// AuthService handles sign-in, token checks and sign-out.
type AuthService struct {
	authRepo repository.Authorization
	events   EventLog
	tokens   *tokenIssuer
}

func NewAuthService(repo repository.Authorization, events EventLog, tokens *tokenIssuer) *AuthService {
	return &AuthService{authRepo: repo, events: events, tokens: tokens}
}

// SignIn validates credentials and returns a JWT plus the session marker.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (SignInResult, error) {
	u, err := s.authRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return SignInResult{}, err
	}
	if u == nil {
		return SignInResult{}, ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return SignInResult{}, ErrInvalidPassword
	}

	token, err := s.tokens.issueToken(u)
	if err != nil {
		return SignInResult{}, fmt.Errorf("sign token: %w", err)
	}

	now := s.tokens.now().UTC()
	if err := s.authRepo.TouchLogin(ctx, u.ID, now); err != nil {
		return SignInResult{}, err
	}
	s.record(ctx, models.Event{Username: u.Username, Type: models.EventLogin, Description: "User signed in"})

	return SignInResult{
		Token:   token,
		Session: models.Session{Username: u.Username, IsLoggedIn: true, LoginTime: now},
	}, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	claims, err := s.tokens.parseToken(accessToken)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// Logout records the sign-out and returns the cleared session marker.
func (s *AuthService) Logout(ctx context.Context, userID int) (models.Session, error) {
	u, err := s.authRepo.GetByID(ctx, userID)
	if err != nil {
		return models.Session{}, err
	}
	if u == nil {
		return models.Session{}, ErrUserNotFound
	}
	s.record(ctx, models.Event{Username: u.Username, Type: models.EventLogout, Description: "User signed out"})
	return models.Session{Username: u.Username, IsLoggedIn: false}, nil
}

// record never fails the calling flow; the event log logs its own failures.
func (s *AuthService) record(ctx context.Context, e models.Event) {
	if s.events != nil {
		_ = s.events.Record(ctx, e)
	}
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
