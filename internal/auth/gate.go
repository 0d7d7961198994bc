// Package auth implements the session gate: the single-admin credential
// check, signed session tokens, and per-request actor resolution. The rest
// of the system depends only on the Gate interface, so a multi-user
// deployment can swap in its own session resolution.
package auth

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avetisov/modera/internal/apperr"
	"github.com/avetisov/modera/internal/models"
)

// CookieName carries the session token between requests.
const CookieName = "auth-token"

// Gate answers "who is the authenticated actor for this request".
type Gate interface {
	Actor(r *http.Request) (models.User, bool)
}

// Service authenticates the configured admin and resolves request actors
// from the session cookie or an Authorization header.
type Service struct {
	admin        models.User
	passwordHash []byte
	tokens       *TokenManager
}

// NewService creates the auth service. passwordHash must be a bcrypt hash
// of the admin password; use HashPassword for plain dev passwords.
func NewService(admin models.User, passwordHash string, tokens *TokenManager) *Service {
	return &Service{admin: admin, passwordHash: []byte(passwordHash), tokens: tokens}
}

// HashPassword bcrypt-hashes a plain password at default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks credentials and returns the admin user plus a session token.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *Service) Login(email, password string) (models.User, string, error) {
	if email != s.admin.Email {
		return models.User{}, "", apperr.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return models.User{}, "", apperr.ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(s.admin)
	if err != nil {
		return models.User{}, "", err
	}
	return s.admin, token, nil
}

// SessionCookie builds the HTTP-only session cookie for a token.
func (s *Service) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.tokens.TTL().Seconds()),
	}
}

// ClearCookie builds the cookie that removes the session on logout.
func (s *Service) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}

// Actor resolves the authenticated user from the session cookie or a
// Bearer Authorization header. False means no valid session.
func (s *Service) Actor(r *http.Request) (models.User, bool) {
	token := tokenFromRequest(r)
	if token == "" {
		return models.User{}, false
	}
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return models.User{}, false
	}
	return models.User{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, true
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
