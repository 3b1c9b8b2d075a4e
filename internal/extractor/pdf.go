// Package extractor reads uploaded PDF files into per-page text.
package extractor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdfchat/internal/domain"
)

// PDF extracts the pages of a PDF file in document order. Each page keeps
// its file name and 1-based page number as source metadata.
type PDF struct{}

// NewPDF returns a PDF extractor.
func NewPDF() *PDF { return &PDF{} }

// Extract opens the file and returns one Page per PDF page, skipping pages
// with no extractable text. Page order is the document's own.
func (e *PDF) Extract(path string) ([]domain.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	source := filepath.Base(path)
	var pages []domain.Page
	fonts := make(map[string]*pdf.Font)
	for n := 1; n <= r.NumPage(); n++ {
		page := r.Page(n)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("extract page %d of %s: %w", n, source, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, domain.Page{
			Text: text,
			Metadata: map[string]string{
				"source": source,
				"page":   strconv.Itoa(n),
			},
		})
	}
	return pages, nil
}
