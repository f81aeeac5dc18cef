// Package pdfreader provides page-level access to a PDF: native text, table
// rows reconstructed from positioned words, and rasterized page images for
// OCR fallback.
package pdfreader

import (
	"fmt"
	"image"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// Document is an open PDF. The embedded text layer and table rows come from
// the PDF content stream; page images are rendered with MuPDF.
type Document struct {
	file   *os.File
	reader *pdf.Reader
	render *fitz.Document
	pages  int
}

// Open opens the PDF at path for text extraction and rendering.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	render, err := fitz.New(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to open PDF for rendering: %w", err)
	}

	return &Document{file: f, reader: r, render: render, pages: r.NumPage()}, nil
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.pages
}

// PageText extracts the embedded text layer of page n (1-based). Pages
// without a text layer yield an empty string, not an error.
func (d *Document) PageText(n int) (string, error) {
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", n, err)
	}
	return text, nil
}

// PageImage renders page n (1-based) at the given resolution.
func (d *Document) PageImage(n int, dpi float64) (image.Image, error) {
	img, err := d.render.ImageDPI(n-1, dpi)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", n, err)
	}
	return img, nil
}

// Close releases both underlying readers.
func (d *Document) Close() error {
	d.render.Close()
	return d.file.Close()
}
