package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/config"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/embedding"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/ingest"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/llm"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/ocr"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/pdfreader"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/vectorstore"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	var completer llm.Completer
	if cfg.LLM.Enabled() {
		client, err := llm.New(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout())
		if err != nil {
			logger.Fatal("failed to create llm client", zap.Error(err))
		}
		completer = client
	} else {
		logger.Warn("no language model configured, skipping text cleaning and enrichment")
	}

	embedder, err := embedding.New(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.EmbeddingModel)
	if err != nil {
		logger.Fatal("failed to create embedding client", zap.Error(err))
	}

	processLog, err := ingest.OpenProcessLog(cfg.Paths.ProcessingLog)
	if err != nil {
		logger.Fatal("failed to open processing log", zap.Error(err))
	}
	defer processLog.Close()

	open := func(path string) (ingest.Document, error) {
		return pdfreader.Open(path)
	}

	engine := ocr.NewTesseract(cfg.OCR.Languages...)
	extractor := ingest.NewExtractor(engine, completer, cfg.OCR.DPI, logger)
	enricher := ingest.NewEnricher(completer, logger)
	store := vectorstore.NewFileStore()

	pipeline := ingest.NewPipeline(open, extractor, enricher, completer, embedder, store, processLog, logger)

	summary, err := pipeline.Run(context.Background(), cfg.Paths.PDFDir)
	if err != nil {
		logger.Fatal("ingestion failed", zap.Error(err))
	}

	if err := store.Save(cfg.Paths.IndexFile); err != nil {
		logger.Fatal("failed to save index", zap.Error(err))
	}

	logger.Info("ingestion complete",
		zap.Int("pdfs", summary.PDFs),
		zap.Int("pages", summary.Pages),
		zap.Int("ocr_pages", summary.OCRPages),
		zap.Int("tables", summary.Tables),
		zap.Int("failures", summary.Failures),
		zap.Int("indexed_units", store.Count()),
		zap.String("index", cfg.Paths.IndexFile))

	fmt.Printf("Processed %d PDFs (%d pages, %d via OCR, %d tables, %d failures); %d units indexed at %s\n",
		summary.PDFs, summary.Pages, summary.OCRPages, summary.Tables, summary.Failures,
		store.Count(), cfg.Paths.IndexFile)
}
