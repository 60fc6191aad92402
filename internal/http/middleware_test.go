package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"kesif-backend/internal/service"
	"kesif-backend/internal/store"
)

type fakeAuthService struct {
	sessions map[string]*store.Session
	err      error
}

var _ service.AuthService = (*fakeAuthService)(nil)

func (f *fakeAuthService) Login(context.Context, service.LoginRequest) error { return nil }

func (f *fakeAuthService) VerifyCode(context.Context, service.VerifyCodeRequest) (*service.LoginResult, error) {
	return nil, nil
}

func (f *fakeAuthService) Logout(context.Context, string) error { return nil }

func (f *fakeAuthService) Authenticate(_ context.Context, token string) (*store.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[token], nil
}

func TestRequireSession(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]*store.Session{
		"valid-token": {UserID: 1, Email: "admin@kesif.com", Role: "admin"},
	}}

	var gotSession *store.Session
	guarded := RequireSession(auth, zap.NewNop(), func(w http.ResponseWriter, r *http.Request) {
		gotSession = sessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// Bearer 头
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()
	guarded(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, gotSession)
	assert.Equal(t, "admin@kesif.com", gotSession.Email)

	// cookie 回退
	gotSession = nil
	req = httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "admin_token", Value: "valid-token"})
	w = httptest.NewRecorder()
	guarded(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, gotSession)
}

func TestRequireSession_Rejections(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]*store.Session{}}
	guarded := RequireSession(auth, zap.NewNop(), func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	})

	// token 缺失
	w := httptest.NewRecorder()
	guarded(w, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// token 无效/过期
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	w = httptest.NewRecorder()
	guarded(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireSession_StoreError(t *testing.T) {
	auth := &fakeAuthService{err: errors.New("redis down")}
	guarded := RequireSession(auth, zap.NewNop(), func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run on store error")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer any")
	w := httptest.NewRecorder()
	guarded(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
