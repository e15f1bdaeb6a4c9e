package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/steelstack/crm-api/internal/config"
	"github.com/steelstack/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticUserCounter struct {
	hasUsers bool
}

func (s *staticUserCounter) HasUsers(ctx context.Context) (bool, error) {
	return s.hasUsers, nil
}

func testTokenManager() *TokenManager {
	return NewTokenManager(&config.AuthConfig{
		JWTSecret:  "test-secret",
		SessionTTL: 3600,
	}, "crm-test")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidCookiePasses(t *testing.T) {
	tokens := testTokenManager()
	mw := NewMiddleware(tokens, &staticUserCounter{hasUsers: true}, zap.NewNop())

	token, err := tokens.Sign(&domain.User{
		BaseModel: domain.BaseModel{ID: 3},
		Username:  "rep",
		Role:      domain.RoleSalesperson,
	})
	require.NoError(t, err)

	var captured *UserContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = MustFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()

	mw.RequireAuth(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.EqualValues(t, 3, captured.UserID)
	assert.Equal(t, domain.RoleSalesperson, captured.Role)
}

func TestRequireAuth_APIRequestsGet401JSON(t *testing.T) {
	mw := NewMiddleware(testTokenManager(), &staticUserCounter{hasUsers: true}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	rec := httptest.NewRecorder()

	mw.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRequireAuth_BrowserRedirectsToLogin(t *testing.T) {
	mw := NewMiddleware(testTokenManager(), &staticUserCounter{hasUsers: true}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	mw.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuth_BrowserRedirectsToSetupWhenNoUsers(t *testing.T) {
	mw := NewMiddleware(testTokenManager(), &staticUserCounter{hasUsers: false}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	mw.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/setup", rec.Header().Get("Location"))
}

func TestRequireAuth_RejectsTamperedToken(t *testing.T) {
	tokens := testTokenManager()
	mw := NewMiddleware(tokens, &staticUserCounter{hasUsers: true}, zap.NewNop())

	other := NewTokenManager(&config.AuthConfig{
		JWTSecret:  "different-secret",
		SessionTTL: 3600,
	}, "crm-test")
	forged, err := other.Sign(&domain.User{
		BaseModel: domain.BaseModel{ID: 1},
		Username:  "admin",
		Role:      domain.RoleAdmin,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: forged})
	rec := httptest.NewRecorder()

	mw.RequireAuth(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_SalespersonGets403NotRedirect(t *testing.T) {
	mw := NewMiddleware(testTokenManager(), &staticUserCounter{hasUsers: true}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	ctx := WithUserContext(req.Context(), &UserContext{
		UserID:   2,
		Username: "rep",
		Role:     domain.RoleSalesperson,
	})
	rec := httptest.NewRecorder()

	mw.RequireAdmin(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	mw := NewMiddleware(testTokenManager(), &staticUserCounter{hasUsers: true}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	ctx := WithUserContext(req.Context(), &UserContext{
		UserID:   1,
		Username: "admin",
		Role:     domain.RoleAdmin,
	})
	rec := httptest.NewRecorder()

	mw.RequireAdmin(okHandler()).ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionCookie_NonPersistent(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, SessionCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	// no Max-Age and no Expires makes it a session cookie
	assert.Equal(t, 0, c.MaxAge)
	assert.True(t, c.Expires.IsZero())
}

func TestClearSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.Empty(t, cookies[0].Value)
}
