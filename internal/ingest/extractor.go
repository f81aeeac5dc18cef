package ingest

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/llm"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/ocr"
	"go.uber.org/zap"
)

// Pages whose trimmed native text is shorter than this are treated as
// scanned and sent to OCR.
const nativeTextThreshold = 50

// Extractor decides per page between the PDF's native text layer and OCR.
type Extractor struct {
	ocr     ocr.Engine
	cleaner llm.Completer // nil disables OCR text cleaning
	dpi     float64
	logger  *zap.Logger
}

// NewExtractor creates an extractor. cleaner may be nil.
func NewExtractor(engine ocr.Engine, cleaner llm.Completer, dpi float64, logger *zap.Logger) *Extractor {
	if dpi <= 0 {
		dpi = 300
	}
	return &Extractor{ocr: engine, cleaner: cleaner, dpi: dpi, logger: logger}
}

// ExtractPage extracts the text of one page. Native extraction is trusted
// when it yields at least nativeTextThreshold trimmed characters; otherwise
// the page is rasterized and recognized, and the OCR text is cleaned
// best-effort. OCR and parse failures are wrapped as domain.ErrExtraction.
func (e *Extractor) ExtractPage(ctx context.Context, doc Document, filename string, pageNum int) (domain.PageRecord, error) {
	rec := domain.PageRecord{
		SourceFilename: filename,
		PageNumber:     pageNum,
		Method:         domain.ExtractionNative,
	}

	text, err := doc.PageText(pageNum)
	if err != nil {
		return rec, fmt.Errorf("%w: %s page %d: %v", domain.ErrExtraction, filename, pageNum, err)
	}

	// The threshold counts characters, not bytes: Devanagari and Gujarati
	// text is three bytes per rune.
	if utf8.RuneCountInString(strings.TrimSpace(text)) < nativeTextThreshold {
		rec.Method = domain.ExtractionOCR
		text, err = e.recognizePage(ctx, doc, filename, pageNum)
		if err != nil {
			return rec, err
		}
	}

	rec.Text = text
	return rec, nil
}

func (e *Extractor) recognizePage(ctx context.Context, doc Document, filename string, pageNum int) (string, error) {
	img, err := doc.PageImage(pageNum, e.dpi)
	if err != nil {
		return "", fmt.Errorf("%w: %s page %d: %v", domain.ErrExtraction, filename, pageNum, err)
	}

	fragments, err := e.ocr.Recognize(ctx, img)
	if err != nil {
		return "", fmt.Errorf("%w: %s page %d: %v", domain.ErrExtraction, filename, pageNum, err)
	}

	text := strings.Join(fragments, " ")
	return e.cleanText(ctx, text), nil
}

// cleanText normalizes OCR output through the language model. Best-effort:
// any failure returns the original text unchanged.
func (e *Extractor) cleanText(ctx context.Context, text string) string {
	if e.cleaner == nil || text == "" {
		return text
	}
	cleaned, err := e.cleaner.Complete(ctx, llm.CleanTextPrompt(text))
	if err != nil {
		e.logger.Warn("text cleaning failed, keeping raw OCR text", zap.Error(err))
		return text
	}
	if cleaned == "" {
		return text
	}
	return cleaned
}
