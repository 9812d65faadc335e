package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/user/crm-service/internal/entity"
	"go.uber.org/zap"
)

type sessionKey struct{}

// Authenticator resolves bearer tokens into sessions.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *entity.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session attached by Session, if any.
func SessionFrom(ctx context.Context) (*entity.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*entity.Session)
	return s, ok && s != nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// Session attaches the caller's session to the request context when a valid
// bearer token is present. Requests without one pass through anonymously.
func Session(auth Authenticator, logger *zap.Logger, unauthenticated error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			s, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, unauthenticated) {
					logger.Error("session lookup failed", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// RequireRole rejects requests without a session (401) or, when roles are
// given, without one of them (403).
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := SessionFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if len(roles) > 0 && !hasRole(s.Role, roles) {
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
