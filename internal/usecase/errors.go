package usecase

import (
	"errors"

	"github.com/user/crm-service/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrAnalysisFailed is returned when an uploaded document could not be decoded.
	ErrAnalysisFailed = errors.New("document analysis failed")
	// ErrNoTextLayer is returned when a document decodes to blank text, e.g. a scanned PDF.
	ErrNoTextLayer         = errors.New("document has no text layer")
	ErrUnsupportedDocument = repository.ErrUnsupportedDocument

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient role")
)
