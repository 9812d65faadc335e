package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/user/crm-service/internal/delivery/http/request"
	"github.com/user/crm-service/internal/delivery/http/response"
	"github.com/user/crm-service/internal/repository"
	"github.com/user/crm-service/internal/usecase"
	"go.uber.org/zap"
)

// HealthCheck pings one backing service.
type HealthCheck func(ctx context.Context) error

// Services bundles the usecases the HTTP layer exposes.
type Services struct {
	Reports       usecase.ReportService
	Companies     usecase.CompanyService
	Contacts      usecase.ContactService
	Leads         usecase.LeadService
	Activities    usecase.ActivityService
	Reminders     usecase.ReminderService
	Notifications usecase.NotificationService
	Compliances   usecase.ComplianceService
	Analytics     usecase.AnalyticsService
	Search        usecase.SearchService
	Auth          usecase.AuthService
}

type Handler struct {
	svc            Services
	validator      *request.Validator
	health         map[string]HealthCheck
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewHandler(svc Services, validator *request.Validator, health map[string]HealthCheck, maxUploadBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		svc:            svc,
		validator:      validator,
		health:         health,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// HandleHealthCheck reports 503 when any backing service fails its ping.
func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response.Health{Status: "ok", Services: map[string]string{}}
	for name, check := range h.health {
		if err := check(ctx); err != nil {
			h.logger.Error("health check failed", zap.String("service", name), zap.Error(err))
			resp.Services[name] = "unhealthy"
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "healthy"
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema string, dst any) bool {
	if err := h.validator.Decode(r, schema, dst); err != nil {
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeJSONError(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeErr maps usecase and repository errors to status codes. notFound is
// the message used for 404s.
func (h *Handler) writeErr(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		h.writeJSONError(w, notFound, http.StatusNotFound)
	case errors.Is(err, repository.ErrConflict):
		h.writeJSONError(w, "Already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, request.ErrInvalidBody):
		h.writeJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrUnauthenticated):
		h.writeJSONError(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrForbidden):
		h.writeJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, context.DeadlineExceeded):
		h.writeJSONError(w, "Request timed out", http.StatusGatewayTimeout)
	default:
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.writeJSONError(w, "Database error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) writeFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write download", zap.String("filename", filename), zap.Error(err))
	}
}
