package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avetisov/modera/internal/apperr"
	"github.com/avetisov/modera/internal/models"
)

func testService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatal(err)
	}
	admin := models.User{ID: "1", Email: "admin@example.com", Name: "Admin User", Role: "admin"}
	return NewService(admin, hash, NewTokenManager("test-secret", "modera-test", time.Hour))
}

func TestLoginSuccess(t *testing.T) {
	s := testService(t)

	user, token, err := s.Login("admin@example.com", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "admin@example.com" || user.Role != "admin" {
		t.Errorf("user = %+v", user)
	}
	if token == "" {
		t.Error("empty token")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := testService(t)

	for _, tt := range []struct{ email, password string }{
		{"admin@example.com", "wrong"},
		{"intruder@example.com", "admin123"},
		{"", ""},
	} {
		if _, _, err := s.Login(tt.email, tt.password); !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q) err = %v, want ErrInvalidCredentials", tt.email, tt.password, err)
		}
	}
}

func TestActorFromCookie(t *testing.T) {
	s := testService(t)
	_, token, err := s.Login("admin@example.com", "admin123")
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(s.SessionCookie(token))

	user, ok := s.Actor(r)
	if !ok {
		t.Fatal("Actor = false with valid cookie")
	}
	if user.Email != "admin@example.com" {
		t.Errorf("email = %q", user.Email)
	}
}

func TestActorFromBearerHeader(t *testing.T) {
	s := testService(t)
	_, token, _ := s.Login("admin@example.com", "admin123")

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	if _, ok := s.Actor(r); !ok {
		t.Error("Actor = false with valid bearer token")
	}
}

func TestActorRejectsMissingAndGarbageTokens(t *testing.T) {
	s := testService(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := s.Actor(r); ok {
		t.Error("Actor = true without token")
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-jwt"})
	if _, ok := s.Actor(r); ok {
		t.Error("Actor = true with garbage token")
	}
}

func TestActorRejectsForeignSignature(t *testing.T) {
	s := testService(t)
	other := NewTokenManager("other-secret", "modera-test", time.Hour)
	token, err := other.Generate(models.User{ID: "1", Email: "admin@example.com"})
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	if _, ok := s.Actor(r); ok {
		t.Error("Actor = true with token signed by another secret")
	}
}

func TestClearCookieExpiresSession(t *testing.T) {
	s := testService(t)
	c := s.ClearCookie()
	if c.MaxAge >= 0 || c.Value != "" {
		t.Errorf("clear cookie = %+v", c)
	}
}
