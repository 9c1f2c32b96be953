// Package pdftext extracts plain text from PDF documents, page by page.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrCorruptPDF means the bytes do not parse as a PDF container.
	ErrCorruptPDF = errors.New("invalid or corrupted PDF")
	// ErrNoText means the container parsed but no page yielded any text,
	// e.g. a pure image scan.
	ErrNoText = errors.New("no text content could be extracted from the PDF")
)

// Extractor turns raw PDF bytes into concatenated per-page text.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// open parses the container. ledongthuc/pdf panics on some malformed inputs,
// so the panic is converted into ErrCorruptPDF here.
func open(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r = nil
			err = fmt.Errorf("%w: %v", ErrCorruptPDF, rec)
		}
	}()
	r, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPDF, err)
	}
	return r, nil
}

// Extract returns the document text with one "--- Page N ---" marker per
// page, in page order. Pages that yield no text are skipped; if every page is
// empty the result is ErrNoText.
func (e *Extractor) Extract(data []byte) (string, error) {
	reader, err := open(data)
	if err != nil {
		return "", err
	}

	var sections []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single undecodable page should not sink the document.
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("--- Page %d ---\n%s", i, pageText))
	}

	full := strings.Join(sections, "\n\n")
	if strings.TrimSpace(full) == "" {
		return "", ErrNoText
	}
	return full, nil
}

// IsValid reports whether the bytes parse as a PDF container. It never
// panics and says nothing about whether text is extractable.
func (e *Extractor) IsValid(data []byte) bool {
	_, err := open(data)
	return err == nil
}
