package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/steelstack/crm-api/internal/domain"
	"go.uber.org/zap"
)

// SessionCookieName is the name of the session cookie
const SessionCookieName = "crm_session"

// UserCounter reports whether any user accounts exist. Used to decide
// between the /setup and /login redirect targets during first-run.
type UserCounter interface {
	HasUsers(ctx context.Context) (bool, error)
}

// Middleware handles session authentication for HTTP requests
type Middleware struct {
	tokens *TokenManager
	users  UserCounter
	logger *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(tokens *TokenManager, users UserCounter, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		users:  users,
		logger: logger,
	}
}

// SetSessionCookie writes the session token as a non-persistent cookie.
// No Max-Age is set on purpose: the browser drops it when the session ends,
// and the token's own expiry bounds replayed cookies.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAuth verifies the session cookie. Unauthenticated browser requests
// are redirected to /setup while no user accounts exist, otherwise to /login.
// API requests get a JSON 401 instead of a redirect.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err == nil && cookie.Value != "" {
			userCtx, verr := m.tokens.Verify(cookie.Value)
			if verr == nil {
				ctx := WithUserContext(r.Context(), userCtx)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			m.logger.Debug("session token rejected",
				zap.String("path", r.URL.Path),
				zap.Error(verr),
			)
		}

		if wantsJSON(r) {
			writeAuthError(w, http.StatusUnauthorized, domain.ErrorTypeUnauthorized, "Authentication required")
			return
		}

		target := "/login"
		if has, err := m.users.HasUsers(r.Context()); err == nil && !has {
			target = "/setup"
		}
		http.Redirect(w, r, target, http.StatusFound)
	})
}

// RequireAdmin ensures the authenticated user holds the admin role.
// Always a 403, never a redirect: the caller is logged in, just not allowed.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusForbidden, domain.ErrorTypeForbidden, "No user context")
			return
		}

		if !userCtx.IsAdmin() {
			m.logger.Warn("admin access denied",
				zap.String("path", r.URL.Path),
				zap.Uint("user_id", userCtx.UserID),
				zap.String("role", string(userCtx.Role)),
			)
			writeAuthError(w, http.StatusForbidden, domain.ErrorTypeForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeAuthError(w http.ResponseWriter, status int, errType, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&domain.APIError{
		Type:   errType,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	})
}
