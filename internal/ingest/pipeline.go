package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/embedding"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/llm"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/vectorstore"
	"go.uber.org/zap"
)

// Summary accumulates batch-level counters across all processed PDFs.
type Summary struct {
	PDFs     int
	Pages    int
	OCRPages int
	Tables   int
	Failures int
}

type pdfStats struct {
	pages    int
	ocrPages int
	tables   int
}

// Pipeline runs the full ingestion flow for a directory of PDFs. Each PDF is
// processed in two passes: extract all pages first, then enrich them with
// the document-level summary before embedding and indexing.
type Pipeline struct {
	open      Opener
	extractor *Extractor
	enricher  *Enricher
	rewriter  llm.Completer // nil disables table-fact rewriting
	embedder  embedding.Embedder
	store     vectorstore.Store
	log       *ProcessLog // nil disables the processing log
	logger    *zap.Logger
}

// NewPipeline wires the ingestion stages together. rewriter and log may be
// nil.
func NewPipeline(
	open Opener,
	extractor *Extractor,
	enricher *Enricher,
	rewriter llm.Completer,
	embedder embedding.Embedder,
	store vectorstore.Store,
	log *ProcessLog,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		open:      open,
		extractor: extractor,
		enricher:  enricher,
		rewriter:  rewriter,
		embedder:  embedder,
		store:     store,
		log:       log,
		logger:    logger,
	}
}

// Run processes every *.pdf in dir. A failing PDF is counted and skipped;
// the batch continues with the remaining files.
func (p *Pipeline) Run(ctx context.Context, dir string) (Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read PDF directory: %w", err)
	}

	var sum Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		stats, err := p.processPDF(ctx, filepath.Join(dir, entry.Name()))
		if err != nil {
			p.logger.Warn("failed to process PDF, skipping",
				zap.String("pdf", entry.Name()), zap.Error(err))
			sum.Failures++
			continue
		}

		sum.PDFs++
		sum.Pages += stats.pages
		sum.OCRPages += stats.ocrPages
		sum.Tables += stats.tables
	}

	return sum, nil
}

// processPDF extracts, enriches, embeds, and indexes one PDF.
func (p *Pipeline) processPDF(ctx context.Context, path string) (pdfStats, error) {
	var stats pdfStats

	doc, err := p.open(path)
	if err != nil {
		return stats, fmt.Errorf("%w: %s: %v", domain.ErrExtraction, filepath.Base(path), err)
	}
	defer doc.Close()

	name := filepath.Base(path)

	// Pass one: extract every page.
	var pages []domain.PageRecord
	for n := 1; n <= doc.NumPages(); n++ {
		rec, err := p.extractor.ExtractPage(ctx, doc, name, n)
		if err != nil {
			return stats, err
		}

		tables, err := doc.PageTables(n)
		if err != nil {
			return stats, fmt.Errorf("%w: %s page %d: %v", domain.ErrExtraction, name, n, err)
		}
		sentences, converted := ConvertTables(ctx, p.rewriter, tables, p.logger)
		rec.TableSentences = sentences

		stats.pages++
		stats.tables += converted
		if rec.Method == domain.ExtractionOCR {
			stats.ocrPages++
		}
		pages = append(pages, rec)
	}

	// Pass two: the enrichment prefix depends on the whole document.
	combinedTexts := make([]string, 0, len(pages))
	for _, page := range pages {
		combinedTexts = append(combinedTexts, page.CombinedText())
	}
	summary, keywords := p.enricher.SummarizeAndKeywords(ctx, name, strings.Join(combinedTexts, " "))

	units := BuildUnits(pages, summary, keywords)
	if err := p.index(ctx, units); err != nil {
		return stats, err
	}

	if p.log != nil {
		if err := p.log.Record(name, stats.pages, stats.ocrPages, stats.tables); err != nil {
			p.logger.Warn("failed to write processing log", zap.Error(err))
		}
	}

	p.logger.Info("processed PDF",
		zap.String("pdf", name),
		zap.Int("pages", stats.pages),
		zap.Int("ocr_pages", stats.ocrPages),
		zap.Int("tables", stats.tables))
	return stats, nil
}

func (p *Pipeline) index(ctx context.Context, units []domain.DocumentUnit) error {
	if len(units) == 0 {
		return nil
	}

	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed document units: %w", err)
	}
	if len(vectors) != len(units) {
		return fmt.Errorf("embedder returned %d vectors for %d units", len(vectors), len(units))
	}

	entries := make([]vectorstore.Entry, len(units))
	for i, u := range units {
		entries[i] = vectorstore.Entry{
			ID:       uuid.New().String(),
			Text:     u.Text,
			Metadata: u.Metadata,
			Vector:   vectors[i],
		}
	}
	return p.store.Add(entries)
}
