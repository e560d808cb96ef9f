package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/shineplatform/sitegen/internal/config"
)

// CSRFCookieName and CSRFHeaderName carry the double-submit token.
const (
	CSRFCookieName = "csrf-token"
	CSRFHeaderName = "X-CSRF-Token"
	CSRFTokenTTL   = 24 * time.Hour

	csrfNonceBytes = 32
)

// CSRFService issues and checks tokens of the form <random>.<unix ms>.<hmac>.
type CSRFService struct {
	secret []byte
	now    func() time.Time
}

// NewCSRFService keys token signatures with the session signing secret.
func NewCSRFService(cfg config.Config) *CSRFService {
	return &CSRFService{secret: []byte(cfg.AuthSecret), now: time.Now}
}

// Generate returns a fresh token.
func (s *CSRFService) Generate() (string, error) {
	if len(s.secret) == 0 {
		return "", &config.ConfigError{Key: "AUTH_SECRET"}
	}
	buf := make([]byte, csrfNonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	nonce := hex.EncodeToString(buf)
	ts := strconv.FormatInt(s.now().UnixMilli(), 10)
	return nonce + "." + ts + "." + s.sign(nonce, ts), nil
}

// Validate checks structure, age and signature of token.
func (s *CSRFService) Validate(token string) error {
	if len(s.secret) == 0 {
		return &config.ConfigError{Key: "AUTH_SECRET"}
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 || len(parts[0]) != hex.EncodedLen(csrfNonceBytes) || parts[1] == "" || parts[2] == "" {
		return ErrInvalidCSRFToken
	}
	ms, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ErrInvalidCSRFToken
	}
	now := s.now()
	issued := time.UnixMilli(ms)
	if issued.After(now) || now.Sub(issued) > CSRFTokenTTL {
		return ErrInvalidCSRFToken
	}
	if !hmac.Equal([]byte(parts[2]), []byte(s.sign(parts[0], parts[1]))) {
		return ErrInvalidCSRFToken
	}
	return nil
}

// Matches reports whether the header echoes the cookie and the token is valid.
func (s *CSRFService) Matches(cookie, header string) error {
	if cookie == "" || header == "" || !hmac.Equal([]byte(cookie), []byte(header)) {
		return ErrInvalidCSRFToken
	}
	return s.Validate(cookie)
}

func (s *CSRFService) sign(nonce, ts string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(nonce + "." + ts))
	return hex.EncodeToString(mac.Sum(nil))
}
