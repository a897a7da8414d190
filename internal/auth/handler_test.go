package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogoutHandlerTrimsToken(t *testing.T) {
	sessions := &fakeSessionStore{}
	svc := NewService(&fakeUserStore{}, sessions, "secret")

	token, err := svc.CreateSession(context.Background(), 1)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	h := &LogoutHandler{Service: svc, Logger: slog.Default()}
	body := `{"session_token": "  ` + token + ` "}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, ok := sessions.sessions[token]; ok {
		t.Error("padded token did not log the session out")
	}
}

func TestRefreshHandlerTrimsToken(t *testing.T) {
	users := &fakeUserStore{users: map[string]*User{
		"a@b.com": {ID: 1, Email: "a@b.com", PasswordHash: "x", Role: RoleUser},
	}}
	sessions := &fakeSessionStore{}
	svc := NewService(users, sessions, "secret")

	token, err := svc.CreateSession(context.Background(), 1)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	h := &RefreshHandler{Service: svc, Logger: slog.Default()}
	body := `{"session_token": " ` + token + `  "}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
