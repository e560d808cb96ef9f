package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shineplatform/sitegen/internal/config"
	"github.com/shineplatform/sitegen/internal/logger"
	"github.com/shineplatform/sitegen/internal/metrics"
	"github.com/shineplatform/sitegen/internal/models"
)

// SessionTTL is the lifetime of every session token and cookie.
const SessionTTL = 24 * time.Hour

// Scope separates the admin session from the preview-manager session. Each
// scope has its own cookie and token audience.
type Scope string

const (
	ScopeAdmin          Scope = "admin"
	ScopePreviewManager Scope = "preview-manager"
)

// CookieName is the cookie carrying the scope's session token.
func (s Scope) CookieName() string {
	if s == ScopePreviewManager {
		return "preview-manager-session"
	}
	return "session-token"
}

// Scopes lists every session scope.
func Scopes() []Scope {
	return []Scope{ScopeAdmin, ScopePreviewManager}
}

// Session is a freshly minted token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService implements the shared-password gate. It keeps no session state.
type AuthService struct {
	password string
	secret   []byte
	now      func() time.Time
}

// NewAuthService builds the gate from the configured secrets. Missing secrets
// are only reported when Login or Verify is called.
func NewAuthService(cfg config.Config) *AuthService {
	return &AuthService{
		password: cfg.AdminPassword,
		secret:   []byte(cfg.AuthSecret),
		now:      time.Now,
	}
}

// Login checks password against the shared secret and mints a session token
// for scope.
func (s *AuthService) Login(scope Scope, password string) (*Session, error) {
	if s.password == "" || len(s.secret) == 0 {
		metrics.IncLoginAttempt(string(scope), "error")
		if s.password == "" {
			return nil, &config.ConfigError{Key: "PREVIEW_MANAGER_PASSWORD"}
		}
		return nil, &config.ConfigError{Key: "AUTH_SECRET"}
	}

	if !s.passwordMatches(password) {
		metrics.IncLoginAttempt(string(scope), "failure")
		logger.Log().WithField("scope", scope).Warn("failed login attempt")
		return nil, ErrInvalidCredentials
	}

	session, err := s.issue(scope)
	if err != nil {
		return nil, err
	}
	metrics.IncLoginAttempt(string(scope), "success")
	return session, nil
}

func (s *AuthService) passwordMatches(password string) bool {
	if isBcryptHash(s.password) {
		return bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	}
	// Hash both sides so the comparison does not leak the secret's length.
	want := sha256.Sum256([]byte(s.password))
	got := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare(want[:], got[:]) == 1
}

func isBcryptHash(secret string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(secret, prefix) {
			return true
		}
	}
	return false
}

func (s *AuthService) issue(scope Scope) (*Session, error) {
	now := s.now()
	expires := now.Add(SessionTTL)
	sessionID := uuid.NewString()

	claims := models.SessionClaims{
		User:           models.SessionUser{ID: string(scope)},
		Expires:        expires.UTC().Format(time.RFC3339Nano),
		IssuedAtMillis: now.UnixMilli(),
		SessionID:      sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Audience:  jwt.ClaimStrings{string(scope)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expires}, nil
}

// Verify accepts a token only if the signature, the registered exp, the scope
// audience and the payload expires field all check out.
func (s *AuthService) Verify(scope Scope, token string) (*models.SessionClaims, error) {
	if len(s.secret) == 0 {
		return nil, &config.ConfigError{Key: "AUTH_SECRET"}
	}
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(string(scope)),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	expires, ok := claims.PayloadExpiry()
	if !ok || s.now().After(expires) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
