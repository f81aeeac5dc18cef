// Package ingest implements the offline ingestion pipeline: per-page
// extraction-method decision with OCR fallback, table-to-sentence
// conversion, document-level summary/keyword enrichment, and hand-off to the
// vector index.
package ingest

import "image"

// Document abstracts the per-page PDF access the pipeline needs, so tests
// can substitute fixed pages for real files.
type Document interface {
	NumPages() int
	PageText(n int) (string, error)
	PageTables(n int) ([][][]string, error)
	PageImage(n int, dpi float64) (image.Image, error)
	Close() error
}

// Opener opens a PDF by path.
type Opener func(path string) (Document, error)
