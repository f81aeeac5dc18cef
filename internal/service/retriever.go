package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/embedding"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/vectorstore"
)

// Retriever performs similarity search over the document index.
type Retriever struct {
	embedder embedding.Embedder
	store    vectorstore.Store
	topK     int
}

// NewRetriever creates a retriever returning up to topK passages per query.
func NewRetriever(embedder embedding.Embedder, store vectorstore.Store, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

// Retrieve embeds the query and returns the most similar indexed passages.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]vectorstore.Result, error) {
	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	return r.store.Search(vector, r.topK)
}

// Query answers without a language model: the retrieved passages themselves
// become the answer, with their source references attached. Used when no
// model is configured; there is no session memory on this path.
func (r *Retriever) Query(ctx context.Context, query string) (*domain.GenerationResult, error) {
	results, err := r.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.New("no matching passages in the index")
	}

	texts := make([]string, 0, len(results))
	for _, res := range results {
		texts = append(texts, res.Entry.Text)
	}

	return &domain.GenerationResult{
		Answer:  strings.Join(texts, "\n\n"),
		Sources: sourcesFromResults(results),
	}, nil
}

// sourcesFromResults extracts {filename, page} pairs from result metadata.
// Page numbers may arrive as float64 after a JSON round trip through the
// persisted index.
func sourcesFromResults(results []vectorstore.Result) []domain.SourceRef {
	sources := make([]domain.SourceRef, 0, len(results))
	for _, res := range results {
		var ref domain.SourceRef
		if v, ok := res.Entry.Metadata[domain.MetadataKeySourceFilename].(string); ok {
			ref.Filename = v
		}
		switch v := res.Entry.Metadata[domain.MetadataKeyPageNumber].(type) {
		case int:
			ref.Page = v
		case float64:
			ref.Page = int(v)
		}
		sources = append(sources, ref)
	}
	return sources
}
