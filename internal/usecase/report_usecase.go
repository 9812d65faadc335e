package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/internal/extractor"
	"github.com/user/crm-service/internal/repository"
	"github.com/user/crm-service/pkg/metrics"
	"github.com/user/crm-service/pkg/utils"
	"go.uber.org/zap"
)

// logPreview is how much recovered text is written to the debug log per upload.
const logPreview = 1000

// UploadInput is one document received from a client or the inbox.
type UploadInput struct {
	OriginalName string
	Data         []byte
}

// ReportService manages ESG report records and their documents.
type ReportService interface {
	Upload(ctx context.Context, in UploadInput) (*entity.Report, error)
	List(ctx context.Context) ([]*entity.Report, error)
	Get(ctx context.Context, id int64) (*entity.Report, error)
	Create(ctx context.Context, name, url string) (*entity.Report, error)
	Update(ctx context.Context, id int64, patch entity.ReportPatch) (*entity.Report, error)
	Delete(ctx context.Context, id int64) error
	ExportXLSX(ctx context.Context) ([]byte, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	GeneratePDF(ctx context.Context) ([]byte, error)
	ESGBreakdown(ctx context.Context) ([]*entity.ESGBreakdownItem, error)
}

type reportUseCase struct {
	reports   repository.ReportRepository
	files     repository.FileStore
	text      repository.TextExtractor
	sheets    repository.SheetExporter
	renderer  repository.ReportRenderer
	logger    *zap.Logger
	now       func() time.Time
	newFileID func() string
}

// NewReportUseCase creates the report service.
func NewReportUseCase(
	reports repository.ReportRepository,
	files repository.FileStore,
	text repository.TextExtractor,
	sheets repository.SheetExporter,
	renderer repository.ReportRenderer,
	logger *zap.Logger,
) ReportService {
	return &reportUseCase{
		reports:   reports,
		files:     files,
		text:      text,
		sheets:    sheets,
		renderer:  renderer,
		logger:    logger,
		now:       time.Now,
		newFileID: uuid.NewString,
	}
}

// Upload stores the document, recovers its text and persists the extracted metadata.
// A document that cannot be read is removed again and nothing is persisted.
func (uc *reportUseCase) Upload(ctx context.Context, in UploadInput) (*entity.Report, error) {
	original := utils.BaseName(in.OriginalName)
	if original == "" || len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrInvalidInput)
	}

	stored := uc.newFileID()
	if ext := utils.Ext(original); ext != "" {
		stored += "." + ext
	}
	if _, err := uc.files.Save(ctx, stored, in.Data); err != nil {
		metrics.ReportUploadsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("store upload: %w", err)
	}

	text, err := uc.text.Extract(ctx, in.Data, original)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrNoTextLayer
	}
	if err != nil {
		uc.discard(ctx, stored)
		switch {
		case errors.Is(err, ErrNoTextLayer):
			metrics.ReportUploadsTotal.WithLabelValues("no_text").Inc()
			return nil, err
		case errors.Is(err, ErrUnsupportedDocument):
			metrics.ReportUploadsTotal.WithLabelValues("unsupported").Inc()
			return nil, err
		default:
			metrics.ReportUploadsTotal.WithLabelValues("failure").Inc()
			return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
		}
	}

	uc.logger.Debug("extracted document text",
		zap.String("originalname", original),
		zap.String("text", utils.Truncate(text, logPreview)),
	)

	meta := extractor.Extract(text)
	countFields(meta)

	report, err := uc.reports.Create(ctx, &entity.Report{
		Filename:       stored,
		OriginalName:   original,
		UploadedAt:     uc.now().UTC(),
		ReportMetadata: meta,
	})
	if err != nil {
		uc.discard(ctx, stored)
		metrics.ReportUploadsTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("save report: %w", err)
	}

	metrics.ReportUploadsTotal.WithLabelValues("success").Inc()
	uc.logger.Info("report analysed",
		zap.Int64("id", report.ID),
		zap.String("filename", stored),
		zap.Bool("empty", meta.Empty()),
	)
	return report, nil
}

func countFields(m entity.ReportMetadata) {
	for field, found := range map[string]bool{
		"company":   m.Company != nil,
		"year":      m.Year != nil,
		"esg_score": m.ESGScore != nil,
		"metrics":   m.Metrics != nil,
		"summary":   m.Summary != nil,
	} {
		if found {
			metrics.FieldsExtracted.WithLabelValues(field).Inc()
		}
	}
}

func (uc *reportUseCase) discard(ctx context.Context, name string) {
	if err := uc.files.Remove(ctx, name); err != nil && !errors.Is(err, repository.ErrNotFound) {
		uc.logger.Warn("failed to remove stored upload", zap.String("filename", name), zap.Error(err))
	}
}

func (uc *reportUseCase) List(ctx context.Context) ([]*entity.Report, error) {
	return uc.reports.List(ctx)
}

func (uc *reportUseCase) Get(ctx context.Context, id int64) (*entity.Report, error) {
	return uc.reports.Get(ctx, id)
}

func (uc *reportUseCase) Create(ctx context.Context, name, url string) (*entity.Report, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return uc.reports.Create(ctx, &entity.Report{
		Name:       name,
		URL:        strings.TrimSpace(url),
		UploadedAt: uc.now().UTC(),
	})
}

func (uc *reportUseCase) Update(ctx context.Context, id int64, patch entity.ReportPatch) (*entity.Report, error) {
	if patch.Year != nil && (*patch.Year < 1900 || *patch.Year > 2099) {
		return nil, fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}
	return uc.reports.Update(ctx, id, patch)
}

// Delete removes the record and, for uploads, the stored document.
func (uc *reportUseCase) Delete(ctx context.Context, id int64) error {
	report, err := uc.reports.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.reports.Delete(ctx, id); err != nil {
		return err
	}
	if report.Filename != "" {
		uc.discard(ctx, report.Filename)
	}
	return nil
}

func (uc *reportUseCase) ExportXLSX(ctx context.Context) ([]byte, error) {
	reports, err := uc.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return uc.sheets.ReportsXLSX(reports)
}

func (uc *reportUseCase) ExportCSV(ctx context.Context) ([]byte, error) {
	reports, err := uc.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	return uc.sheets.ReportsCSV(reports)
}

var summaryTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"str": func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	},
	"year": func(y *int) string {
		if y == nil {
			return "-"
		}
		return fmt.Sprint(*y)
	},
	"score": func(f *float64) string {
		if f == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f", *f)
	},
}).Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>ESG Report Summary</title>
<style>
body{font-family:sans-serif;font-size:11px;margin:24px}
h1{font-size:18px}
table{border-collapse:collapse;width:100%}
th,td{border:1px solid #ccc;padding:4px;text-align:left;vertical-align:top}
th{background:#eee}
</style></head>
<body>
<h1>ESG Report Summary</h1>
<p>Generated {{.Generated}}. {{len .Reports}} reports.</p>
<table>
<tr><th>Document</th><th>Company</th><th>Year</th><th>ESG Score</th><th>Metrics</th><th>Summary</th></tr>
{{range .Reports}}<tr><td>{{if .OriginalName}}{{.OriginalName}}{{else}}{{.Name}}{{end}}</td><td>{{str .Company}}</td><td>{{year .Year}}</td><td>{{score .ESGScore}}</td><td>{{str .Metrics}}</td><td>{{str .Summary}}</td></tr>
{{end}}</table>
{{if .Breakdown}}<h1>Average ESG score by company</h1>
<table><tr><th>Company</th><th>Average</th><th>Reports</th></tr>
{{range .Breakdown}}<tr><td>{{.Company}}</td><td>{{printf "%.1f" .AverageScore}}</td><td>{{.Reports}}</td></tr>
{{end}}</table>{{end}}
</body></html>`))

// GeneratePDF prints a summary of all reports with headless Chrome.
func (uc *reportUseCase) GeneratePDF(ctx context.Context) ([]byte, error) {
	reports, err := uc.reports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	breakdown, err := uc.reports.ESGBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("query esg breakdown: %w", err)
	}

	var buf bytes.Buffer
	err = summaryTemplate.Execute(&buf, map[string]any{
		"Generated": uc.now().UTC().Format(time.RFC1123),
		"Reports":   reports,
		"Breakdown": breakdown,
	})
	if err != nil {
		return nil, fmt.Errorf("render summary html: %w", err)
	}

	start := time.Now()
	pdf, err := uc.renderer.RenderPDF(ctx, buf.String())
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("print summary pdf: %w", err)
	}
	return pdf, nil
}

func (uc *reportUseCase) ESGBreakdown(ctx context.Context) ([]*entity.ESGBreakdownItem, error) {
	return uc.reports.ESGBreakdown(ctx)
}
