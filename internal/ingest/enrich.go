package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/llm"
	"go.uber.org/zap"
)

// Model input caps for enrichment prompts, in characters.
const (
	summaryInputLimit  = 10000
	keywordsInputLimit = 5000
)

// Enricher generates the document-level summary and keyword list that gets
// prepended to every page before embedding.
type Enricher struct {
	llm    llm.Completer // nil disables enrichment
	logger *zap.Logger
}

// NewEnricher creates an enricher. completer may be nil.
func NewEnricher(completer llm.Completer, logger *zap.Logger) *Enricher {
	return &Enricher{llm: completer, logger: logger}
}

// SummarizeAndKeywords produces a 2-3 sentence summary of the combined
// document text and 5-10 search keywords. Best-effort: any collaborator
// failure yields empty values and ingestion continues unenriched.
func (e *Enricher) SummarizeAndKeywords(ctx context.Context, pdfName, combined string) (string, []string) {
	if e.llm == nil {
		return "", nil
	}

	summary, err := e.llm.Complete(ctx, llm.DocumentSummaryPrompt(pdfName, truncateRunes(combined, summaryInputLimit)))
	if err != nil {
		e.logger.Warn("document summary failed, continuing unenriched",
			zap.String("pdf", pdfName), zap.Error(err))
		return "", nil
	}

	raw, err := e.llm.Complete(ctx, llm.KeywordsPrompt(summary, truncateRunes(combined, keywordsInputLimit)))
	if err != nil {
		e.logger.Warn("keyword extraction failed, continuing without keywords",
			zap.String("pdf", pdfName), zap.Error(err))
		return summary, nil
	}

	var keywords []string
	for _, kw := range strings.Split(raw, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	e.logger.Info("generated document enrichment",
		zap.String("pdf", pdfName),
		zap.String("summary", truncateRunes(summary, 100)),
		zap.Int("keywords", len(keywords)))
	return summary, keywords
}

// BuildUnits turns extracted pages into index-ready units, prepending the
// enrichment prefix to every page's text. Every unit of one PDF carries the
// same summary and keyword metadata.
func BuildUnits(pages []domain.PageRecord, summary string, keywords []string) []domain.DocumentUnit {
	prefix := fmt.Sprintf("Document Summary: %s\nKeywords: %s\n\n", summary, strings.Join(keywords, ", "))

	units := make([]domain.DocumentUnit, 0, len(pages))
	for _, page := range pages {
		units = append(units, domain.DocumentUnit{
			Text: prefix + page.CombinedText(),
			Metadata: map[string]any{
				domain.MetadataKeySourceFilename:   page.SourceFilename,
				domain.MetadataKeyPageNumber:       page.PageNumber,
				domain.MetadataKeyExtractionMethod: string(page.Method),
				domain.MetadataKeySummary:          summary,
				domain.MetadataKeyKeywords:         keywords,
			},
		})
	}
	return units
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
