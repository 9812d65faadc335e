package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/crm-service/internal/entity"
	"github.com/xuri/excelize/v2"
)

func sampleReports() []*entity.Report {
	company, metrics := "GreenTech Solutions", "Environment, Social, Governance"
	year, score := 2023, 78.5
	return []*entity.Report{
		{
			ID:           1,
			OriginalName: "greentech.pdf",
			UploadedAt:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			ReportMetadata: entity.ReportMetadata{
				Company: &company, Year: &year, ESGScore: &score, Metrics: &metrics,
			},
		},
		{ID: 2, Name: "Manual", Status: "Draft", UploadedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
	}
}

func TestReportsXLSX(t *testing.T) {
	data, err := NewSheetExporter().ReportsXLSX(sampleReports())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{reportsSheet}, f.GetSheetList())
	rows, err := f.GetRows(reportsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, reportHeaders, rows[0])
	assert.Equal(t, "GreenTech Solutions", rows[1][3])
	assert.Equal(t, "2023", rows[1][4])
	assert.Equal(t, "78.5", rows[1][5])
	assert.Equal(t, "Manual", rows[2][1])
}

func TestReportsCSV(t *testing.T) {
	data, err := NewSheetExporter().ReportsCSV(sampleReports())
	require.NoError(t, err)

	recs, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Environment, Social, Governance", recs[1][6])
	assert.Equal(t, "", recs[2][3])
	assert.Equal(t, "2024-03-02 00:00:00", recs[2][10])
}

func TestContactsXLSX(t *testing.T) {
	data, err := NewSheetExporter().ContactsXLSX([]*entity.Contact{
		{ID: 7, Name: "Ada", Email: "ada@example.com", Company: "Acme"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(contactsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ada@example.com", rows[1][2])
}
