package domain

import "strings"

// ExtractionMethod records how a page's text was obtained.
type ExtractionMethod string

const (
	// ExtractionNative means the PDF's embedded text layer was used.
	ExtractionNative ExtractionMethod = "native"
	// ExtractionOCR means the page was rasterized and recognized.
	ExtractionOCR ExtractionMethod = "ocr"
)

// Metadata keys carried on every indexed unit.
const (
	MetadataKeySourceFilename   = "source_filename"
	MetadataKeyPageNumber       = "page_number"
	MetadataKeyExtractionMethod = "extraction_method"
	MetadataKeySummary          = "summary"
	MetadataKeyKeywords         = "keywords"
)

// PageRecord is one extracted PDF page. It is created once during ingestion
// and not mutated afterwards.
type PageRecord struct {
	SourceFilename string
	PageNumber     int
	Method         ExtractionMethod
	Text           string
	TableSentences []string
}

// CombinedText merges the page text with its converted table sentences.
func (p PageRecord) CombinedText() string {
	if len(p.TableSentences) == 0 {
		return p.Text
	}
	return p.Text + " " + strings.Join(p.TableSentences, " ")
}

// DocumentUnit is the enrichment-ready unit handed to the vector index:
// one per page, text prefixed with the document-level summary and keywords.
// All units derived from the same PDF carry identical summary and keyword
// metadata computed from the entire document.
type DocumentUnit struct {
	Text     string
	Metadata map[string]any
}
