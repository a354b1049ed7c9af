package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user-panel/internal/data/entity"
	"user-panel/internal/data/repository"
	"user-panel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The embedded interfaces keep the fakes small; only the methods the
// middleware touches are overridden.
type fakeSessionRepo struct {
	repository.SessionRepository
	session *entity.Session
	err     error
}

func (f *fakeSessionRepo) FindValidSession(context.Context, string) (*entity.Session, error) {
	return f.session, f.err
}

type fakeUserRepo struct {
	repository.UserRepository
	user *entity.User
	err  error
}

func (f *fakeUserRepo) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return f.user, f.err
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestAuthSessionMissingHeader(t *testing.T) {
	handler := AuthSession(&fakeSessionRepo{}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSessionBadHeaderFormat(t *testing.T) {
	handler := AuthSession(&fakeSessionRepo{}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a malformed header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Token abc")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSessionExpiredOrUnknownToken(t *testing.T) {
	handler := AuthSession(&fakeSessionRepo{session: nil}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for an unknown token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+uuid.NewString())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthSessionInjectsPrincipal(t *testing.T) {
	userID := uuid.New()
	sessions := &fakeSessionRepo{session: &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: time.Now().Add(time.Hour),
	}}

	var gotID uuid.UUID
	var gotOK bool
	handler := AuthSession(sessions, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+sessions.session.Token.String())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotOK || gotID != userID {
		t.Fatalf("expected principal %s in context, got %s (ok=%v)", userID, gotID, gotOK)
	}
}

func TestAdminRejectsNonAdmin(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{user: &entity.User{ID: userID, Role: entity.RoleUser}}

	handler := Admin(users, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for a non-admin principal")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), userID))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Error("expected success=false in envelope")
	}
	if body["message"] != "Access denied this is admin panel." {
		t.Errorf("unexpected message %q", body["message"])
	}
}

func TestAdminAdmitsAdmin(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{user: &entity.User{ID: userID, Role: entity.RoleAdmin}}

	called := false
	handler := Admin(users, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), userID))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("admin principal should reach the handler")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminRequiresAuthenticatedContext(t *testing.T) {
	users := &fakeUserRepo{}

	handler := Admin(users, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without an authenticated principal")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Authentication required") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}
