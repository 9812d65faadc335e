package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/repository"
	"github.com/user/crm-service/pkg/metrics"
	"go.uber.org/zap"
)

type staticAuth map[string]*entity.Session

func (a staticAuth) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	if s, ok := a[token]; ok {
		return s, nil
	}
	return nil, repository.ErrNotFound
}

func protected(roles ...string) http.Handler {
	auth := staticAuth{
		"admin-token": {Username: "root", Role: entity.RoleAdmin},
		"user-token":  {Username: "ada", Role: entity.RoleUser},
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFrom(r.Context())
		_, _ = w.Write([]byte(s.Username))
	})
	return Session(auth, zap.NewNop(), repository.ErrNotFound)(RequireRole(roles...)(ok))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		header string
		roles  []string
		want   int
	}{
		{"anonymous", "", nil, http.StatusUnauthorized},
		{"unknown token", "Bearer nope", nil, http.StatusUnauthorized},
		{"any session", "Bearer user-token", nil, http.StatusOK},
		{"user on admin route", "Bearer user-token", []string{entity.RoleAdmin}, http.StatusForbidden},
		{"admin on admin route", "bearer admin-token", []string{entity.RoleAdmin}, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protected(tc.roles...).ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, BearerToken(req))
	req.Header.Set("Authorization", "Basic abc")
	assert.Empty(t, BearerToken(req))
	req.Header.Set("Authorization", "Bearer  abc ")
	assert.Equal(t, "abc", BearerToken(req))
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	metrics.Init(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/companies/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, p := range []string{"/api/companies/1", "/api/companies/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	got := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/companies/{id}", "404"))
	assert.Equal(t, float64(2), got)
}
