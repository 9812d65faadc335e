// Package export writes report and contact listings as XLSX and CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const (
	reportsSheet  = "Reports"
	contactsSheet = "Contacts"
	summaryWidth  = 140
)

var reportHeaders = []string{
	"ID", "Name", "Original File", "Company", "Year", "ESG Score",
	"Metrics", "Status", "Standard", "Summary", "Uploaded At",
}

var contactHeaders = []string{
	"ID", "Name", "Email", "Phone", "Company", "Role", "Designation", "LinkedIn", "Created At",
}

// SheetExporter implements repository.SheetExporter.
type SheetExporter struct{}

func NewSheetExporter() *SheetExporter {
	return &SheetExporter{}
}

func reportRow(r *entity.Report) []any {
	return []any{
		r.ID,
		r.Name,
		r.OriginalName,
		deref(r.Company),
		derefInt(r.Year),
		derefFloat(r.ESGScore),
		deref(r.Metrics),
		r.Status,
		r.Standard,
		utils.Truncate(deref(r.Summary), summaryWidth),
		r.UploadedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}

func contactRow(c *entity.Contact) []any {
	return []any{
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Role, c.Designation, c.LinkedIn,
		c.CreatedAt.UTC().Format("2006-01-02"),
	}
}

func (e *SheetExporter) ReportsXLSX(reports []*entity.Report) ([]byte, error) {
	rows := make([][]any, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, reportRow(r))
	}
	return writeWorkbook(reportsSheet, reportHeaders, rows, map[string]float64{
		"B": 28, "C": 28, "D": 24, "G": 34, "J": 60, "K": 20,
	})
}

func (e *SheetExporter) ContactsXLSX(contacts []*entity.Contact) ([]byte, error) {
	rows := make([][]any, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, contactRow(c))
	}
	return writeWorkbook(contactsSheet, contactHeaders, rows, map[string]float64{
		"B": 24, "C": 30, "E": 24, "H": 40,
	})
}

// ReportsCSV writes the same columns as ReportsXLSX.
func (e *SheetExporter) ReportsCSV(reports []*entity.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(reportHeaders); err != nil {
		return nil, err
	}
	for _, r := range reports {
		row := reportRow(r)
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = fmt.Sprint(v)
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeWorkbook(sheet string, headers []string, rows [][]any, widths map[string]float64) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet so the workbook has exactly one.
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	for col, w := range widths {
		_ = f.SetColWidth(sheet, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func derefFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
