package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/api"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/config"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/embedding"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/llm"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/repository"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/service"
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

	db, err := repository.NewDB(cfg.Paths.HistoryDB)
	if err != nil {
		logger.Fatal("failed to open history database", zap.Error(err))
	}
	defer db.Close()
	history := repository.NewHistoryRepository(db)

	store, err := vectorstore.Load(cfg.Paths.IndexFile)
	if err != nil {
		logger.Fatal("failed to load document index; run the indexer first",
			zap.String("path", cfg.Paths.IndexFile), zap.Error(err))
	}
	logger.Info("loaded document index",
		zap.String("path", cfg.Paths.IndexFile), zap.Int("entries", store.Count()))

	embedder, err := embedding.New(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.EmbeddingModel)
	if err != nil {
		logger.Fatal("failed to create embedding client", zap.Error(err))
	}

	var completer llm.Completer
	if cfg.LLM.Enabled() {
		client, err := llm.New(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout())
		if err != nil {
			logger.Fatal("failed to create llm client", zap.Error(err))
		}
		completer = client
	} else {
		logger.Warn("no language model configured, answering from retrieval only")
	}

	retriever := service.NewRetriever(embedder, store, cfg.Retrieval.TopK)
	chatService := service.NewChatService(completer, retriever, history, logger)
	statsService := service.NewStatsService(history)

	router := api.SetupRouter(chatService, statsService, api.RouterConfig{
		PDFDir:      cfg.Paths.PDFDir,
		AdminAPIKey: cfg.Admin.APIKey,
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("address", cfg.Address()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
