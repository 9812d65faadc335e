package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/crm-service/internal/delivery/http/handler"
	"github.com/user/crm-service/internal/delivery/http/middleware"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/usecase"
	"go.uber.org/zap"
)

// Options configures the parts of the router that are not handlers.
type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	UploadDir      string
	// StaticDir, when set, serves a single-page app for every non-API path.
	StaticDir string
	Auth      middleware.Authenticator
	Logger    *zap.Logger
}

func New(h *handler.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(opts.Logger))
	r.Use(middleware.Metrics)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	if opts.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	r.Route("/api", func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chimw.Timeout(opts.RequestTimeout))
		}
		r.Use(middleware.Session(opts.Auth, opts.Logger, usecase.ErrUnauthenticated))

		r.Get("/health", h.HandleHealthCheck)
		r.Get("/global-search", h.HandleGlobalSearch)

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", h.HandleListCompanies)
			r.Post("/", h.HandleCreateCompany)
			r.Get("/{id}", h.HandleGetCompany)
			r.Put("/{id}", h.HandleUpdateCompany)
			r.Delete("/{id}", h.HandleDeleteCompany)
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", h.HandleListContacts)
			r.Post("/", h.HandleCreateContact)
			r.Get("/export", h.HandleExportContactsXLSX)
			r.Put("/{id}", h.HandleUpdateContact)
			r.Delete("/{id}", h.HandleDeleteContact)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", h.HandleListLeads)
			r.Post("/", h.HandleCreateLead)
			r.Get("/recent", h.HandleRecentLeads)
			r.Put("/{id}/status", h.HandleUpdateLeadStatus)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", h.HandleListActivities)
			r.Post("/", h.HandleCreateActivity)
			r.Delete("/{id}", h.HandleDeleteActivity)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", h.HandleListReminders)
			r.Post("/", h.HandleCreateReminder)
			r.Patch("/{id}", h.HandleSetReminderDone)
			r.Delete("/{id}", h.HandleDeleteReminder)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.HandleListNotifications)
			r.Post("/", h.HandleCreateNotification)
			r.Put("/{id}", h.HandleMarkNotificationRead)
		})

		r.Get("/compliances", h.HandleListCompliances)
		r.Post("/compliances", h.HandleCreateCompliance)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", h.HandleListAnalytics)
			r.Post("/", h.HandleCreateAnalytics)
			r.Get("/sales", h.HandleSalesChart)
			r.Get("/events", h.HandleEventsChart)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/kpi", h.HandleDashboardKPI)
			r.Get("/metrics", h.HandleDashboardMetrics)
			r.Get("/summary", h.HandleDashboardSummary)
		})

		r.Post("/upload", h.HandleUpload)
		r.Route("/reports", func(r chi.Router) {
			r.Get("/", h.HandleListReports)
			r.Post("/", h.HandleCreateReport)
			r.Get("/export.xlsx", h.HandleExportReportsXLSX)
			r.Get("/export.csv", h.HandleExportReportsCSV)
			r.Get("/summary.pdf", h.HandleReportsPDF)
			r.Get("/esg-breakdown", h.HandleESGBreakdown)
			r.Get("/{id}", h.HandleGetReport)
			r.Patch("/{id}", h.HandleUpdateReport)
			r.Delete("/{id}", h.HandleDeleteReport)
		})

		r.Post("/signup-request", h.HandleSignupRequest)
		r.Post("/login", h.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole())
			r.Post("/logout", h.HandleLogout)
			r.Get("/me", h.HandleMe)
			r.Get("/users", h.HandleListUsers)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleAdmin))
			r.Get("/pending-users", h.HandleListPendingUsers)
			r.Post("/approve-user", h.HandleApproveUser)
			r.Post("/reject-user", h.HandleRejectUser)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Not found"}` + "\n"))
		})
	})

	if opts.StaticDir != "" {
		r.NotFound(spaHandler(opts.StaticDir))
	}

	return r
}

// spaHandler serves files from dir and falls back to index.html so client
// side routes resolve.
func spaHandler(dir string) http.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.NotFound(w, r)
			return
		}
		clean := filepath.Clean("/" + strings.TrimPrefix(r.URL.Path, "/"))
		if info, err := os.Stat(filepath.Join(dir, clean)); err == nil && !info.IsDir() {
			files.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
