package request

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	require.NoError(t, err)
	return v
}

func TestNewValidator_CompilesAllSchemas(t *testing.T) {
	v := newValidator(t)
	for _, name := range []string{
		SchemaCompany, SchemaContact, SchemaLead, SchemaLeadStatus, SchemaActivity,
		SchemaReminder, SchemaReminderDone, SchemaNotification, SchemaNotificationRead,
		SchemaCompliance, SchemaAnalytics, SchemaReport, SchemaReportPatch,
		SchemaSignup, SchemaLogin, SchemaUserID,
	} {
		assert.Contains(t, v.schemas, name)
	}
}

func TestDecode(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		schema  string
		body    string
		wantErr bool
	}{
		{"company ok", SchemaCompany, `{"name":"GreenTech","esg_score":78.5}`, false},
		{"company null score", SchemaCompany, `{"name":"GreenTech","esg_score":null}`, false},
		{"company missing name", SchemaCompany, `{"industry":"Energy"}`, true},
		{"company score out of range", SchemaCompany, `{"name":"X","esg_score":150}`, true},
		{"malformed json", SchemaCompany, `{"name":`, true},
		{"patch empty", SchemaReportPatch, `{}`, true},
		{"patch unknown field", SchemaReportPatch, `{"filename":"x"}`, true},
		{"patch year", SchemaReportPatch, `{"year":2023}`, false},
		{"patch bad year", SchemaReportPatch, `{"year":1850}`, true},
		{"signup bad email", SchemaSignup, `{"name":"a","email":"nope","password":"longenough"}`, true},
		{"compliance date", SchemaCompliance, `{"name":"CSRD","due_date":"2025-09-30"}`, false},
		{"compliance bad date", SchemaCompliance, `{"name":"CSRD","due_date":"30/09/2025"}`, true},
		{"user id string", SchemaUserID, `{"id":"1"}`, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tc.body))
			var dst map[string]any
			err := v.Decode(r, tc.schema, &dst)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBody)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComplianceEntity(t *testing.T) {
	due := "2025-09-30"
	c, err := Compliance{Name: "CSRD", DueDate: &due}.Entity()
	require.NoError(t, err)
	require.NotNil(t, c.DueDate)
	assert.Equal(t, 2025, c.DueDate.Year())

	c, err = Compliance{Name: "CSRD"}.Entity()
	require.NoError(t, err)
	assert.Nil(t, c.DueDate)
}
