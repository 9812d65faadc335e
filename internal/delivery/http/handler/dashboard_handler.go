package handler

import (
	"net/http"

	"github.com/user/crm-service/internal/delivery/http/request"
	"github.com/user/crm-service/internal/delivery/http/response"
	"go.uber.org/zap"
)

const metricNotFound = "Metric not found"

func (h *Handler) HandleListAnalytics(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.Analytics.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, metricNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, points)
}

func (h *Handler) HandleCreateAnalytics(w http.ResponseWriter, r *http.Request) {
	var req request.Analytics
	if !h.decode(w, r, request.SchemaAnalytics, &req) {
		return
	}
	p, err := h.svc.Analytics.Create(r.Context(), req.Entity())
	if err != nil {
		h.writeErr(w, r, err, metricNotFound)
		return
	}
	h.writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) HandleSalesChart(w http.ResponseWriter, r *http.Request) {
	series, err := h.svc.Analytics.SalesChart(r.Context())
	if err != nil {
		h.writeErr(w, r, err, metricNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, series)
}

func (h *Handler) HandleEventsChart(w http.ResponseWriter, r *http.Request) {
	series, err := h.svc.Analytics.EventsChart(r.Context())
	if err != nil {
		h.writeErr(w, r, err, metricNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, series)
}

func (h *Handler) HandleDashboardKPI(w http.ResponseWriter, r *http.Request) {
	kpi, err := h.svc.Analytics.KPI(r.Context())
	if err != nil {
		h.writeErr(w, r, err, metricNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, kpi)
}

func (h *Handler) HandleDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Analytics.Metrics(r.Context())
	if err != nil {
		h.writeErr(w, r, err, metricNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, m)
}

func (h *Handler) HandleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Analytics.Summary(r.Context())
	if err != nil {
		h.writeErr(w, r, err, metricNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, s)
}

func (h *Handler) HandleGlobalSearch(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("Global search failed", zap.Error(err))
		h.writeJSONError(w, "Global search failed", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, response.SearchResponse{Results: results})
}
