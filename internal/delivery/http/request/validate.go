package request

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schema names, one per embedded schemas/<name>.json file.
const (
	SchemaCompany          = "company"
	SchemaContact          = "contact"
	SchemaLead             = "lead"
	SchemaLeadStatus       = "lead_status"
	SchemaActivity         = "activity"
	SchemaReminder         = "reminder"
	SchemaReminderDone     = "reminder_done"
	SchemaNotification     = "notification"
	SchemaNotificationRead = "notification_read"
	SchemaCompliance       = "compliance"
	SchemaAnalytics        = "analytics"
	SchemaReport           = "report"
	SchemaReportPatch      = "report_patch"
	SchemaSignup           = "signup"
	SchemaLogin            = "login"
	SchemaUserID           = "user_id"
)

const maxBodyBytes = 1 << 20

// ErrInvalidBody wraps every decoding and validation failure.
var ErrInvalidBody = errors.New("invalid request body")

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator checks JSON request bodies against the embedded schemas.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// NewValidator compiles every embedded schema.
func NewValidator() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, err
		}
		if err := compiler.AddResource(e.Name(), bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", e.Name(), err)
		}
		names = append(names, e.Name())
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, file := range names {
		s, err := compiler.Compile(file)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", file, err)
		}
		v.schemas[strings.TrimSuffix(file, ".json")] = s
	}
	return v, nil
}

// Decode reads the request body, validates it against the named schema and
// unmarshals it into dst.
func (v *Validator) Decode(r *http.Request, schema string, dst any) error {
	s, ok := v.schemas[schema]
	if !ok {
		return fmt.Errorf("unknown schema %q", schema)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if len(body) > maxBodyBytes {
		return fmt.Errorf("%w: body too large", ErrInvalidBody)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBody, describe(err))
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// describe flattens a validation error to its most specific cause.
func describe(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + ve.Message
}
