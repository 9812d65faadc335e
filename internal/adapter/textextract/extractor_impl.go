// Package textextract recovers the plain text layer of uploaded report documents.
package textextract

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/user/crm-service/internal/repository"
	"github.com/user/crm-service/pkg/utils"
	"go.uber.org/zap"
)

type kind int

const (
	kindUnknown kind = iota
	kindPDF
	kindHTML
	kindText
)

// Extractor implements repository.TextExtractor for PDF, HTML and plain text.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract picks a decoder from the file extension, falling back to content
// sniffing when the extension is missing or unknown.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch detect(data, filename) {
	case kindPDF:
		return extractPDF(data)
	case kindHTML:
		return extractHTML(data)
	case kindText:
		return string(data), nil
	default:
		e.logger.Debug("unsupported document", zap.String("filename", filename))
		return "", fmt.Errorf("%w: %s", repository.ErrUnsupportedDocument, filename)
	}
}

func detect(data []byte, filename string) kind {
	switch utils.Ext(filename) {
	case "pdf":
		return kindPDF
	case "html", "htm":
		return kindHTML
	case "txt", "text", "md":
		return kindText
	}

	ct := http.DetectContentType(data)
	switch {
	case ct == "application/pdf":
		return kindPDF
	case strings.HasPrefix(ct, "text/html"):
		return kindHTML
	case strings.HasPrefix(ct, "text/plain"):
		return kindText
	}
	return kindUnknown
}

// extractPDF concatenates the text of every page, one page per line block.
// The pdf package panics on some malformed inputs, so a panic becomes an error.
func extractPDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("decode pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

// extractHTML returns the visible body text with scripts and styles removed.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript").Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.TrimSpace(body.Text()), nil
}
