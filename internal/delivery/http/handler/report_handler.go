package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/user/crm-service/internal/delivery/http/request"
	"github.com/user/crm-service/internal/delivery/http/response"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/usecase"
	"go.uber.org/zap"
)

const (
	analysisFailed = "PDF analysis failed"
	reportNotFound = "Report not found"
	uploadField    = "file"
)

// HandleUpload analyses one multipart document in field "file".
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeJSON(w, http.StatusRequestEntityTooLarge, response.Result{Message: "File too large"})
			return
		}
		h.writeJSON(w, http.StatusBadRequest, response.Result{Message: "No file uploaded"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, response.Result{Message: "Could not read upload", Error: err.Error()})
		return
	}

	report, err := h.svc.Reports.Upload(r.Context(), usecase.UploadInput{
		OriginalName: header.Filename,
		Data:         data,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, usecase.ErrInvalidInput):
			h.writeJSON(w, http.StatusBadRequest, response.Result{Message: "No file uploaded", Error: err.Error()})
			return
		case errors.Is(err, usecase.ErrNoTextLayer):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, usecase.ErrUnsupportedDocument):
			status = http.StatusUnsupportedMediaType
		default:
			h.logger.Error(analysisFailed, zap.String("originalname", header.Filename), zap.Error(err))
		}
		h.writeJSON(w, status, response.Result{Message: analysisFailed, Error: err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, response.NewUploadResponse(report))
}

func (h *Handler) HandleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.svc.Reports.List(r.Context())
	if err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, reports)
}

func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	report, err := h.svc.Reports.Get(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) HandleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req request.Report
	if !h.decode(w, r, request.SchemaReport, &req) {
		return
	}
	report, err := h.svc.Reports.Create(r.Context(), req.Name, req.URL)
	if err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) HandleUpdateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var patch entity.ReportPatch
	if !h.decode(w, r, request.SchemaReportPatch, &patch) {
		return
	}
	report, err := h.svc.Reports.Update(r.Context(), id, patch)
	if err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) HandleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Reports.Delete(r.Context(), id); err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, response.Success{Success: true})
}

func (h *Handler) HandleExportReportsXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Reports.ExportXLSX(r.Context())
	if err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeFile(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "reports.xlsx", data)
}

func (h *Handler) HandleExportReportsCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Reports.ExportCSV(r.Context())
	if err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeFile(w, "text/csv; charset=utf-8", "reports.csv", data)
}

func (h *Handler) HandleReportsPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.Reports.GeneratePDF(r.Context())
	if err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeFile(w, "application/pdf", "esg-summary.pdf", data)
}

func (h *Handler) HandleESGBreakdown(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Reports.ESGBreakdown(r.Context())
	if err != nil {
		h.writeErr(w, r, err, reportNotFound)
		return
	}
	h.writeJSON(w, http.StatusOK, items)
}
