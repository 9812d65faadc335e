package repository

import (
	"context"

	"github.com/user/crm-service/internal/entity"
)

// FileStore keeps uploaded documents.
type FileStore interface {
	// Save writes data under name and returns the stored location.
	Save(ctx context.Context, name string, data []byte) (string, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Remove(ctx context.Context, name string) error
}

// TextExtractor recovers the plain text layer of a document.
type TextExtractor interface {
	// Extract returns ErrUnsupportedDocument for types it cannot read. An
	// empty string with a nil error means the document has no text layer.
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

// ReportRenderer turns an HTML document into PDF bytes.
type ReportRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// SheetExporter serializes records into spreadsheet downloads.
type SheetExporter interface {
	ReportsXLSX(reports []*entity.Report) ([]byte, error)
	ReportsCSV(reports []*entity.Report) ([]byte, error)
	ContactsXLSX(contacts []*entity.Contact) ([]byte, error)
}
