package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/llm"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/vectorstore"
)

// Session is a conversational retrieval engine scoped to one session
// identifier. It keeps the full exchange history in memory for the process
// lifetime and feeds it back into every answer prompt together with freshly
// retrieved context.
type Session struct {
	llm       llm.Completer
	retriever *Retriever

	mu        sync.Mutex
	exchanges []exchange
}

type exchange struct {
	question string
	answer   string
}

func newSession(completer llm.Completer, retriever *Retriever) *Session {
	return &Session{llm: completer, retriever: retriever}
}

// Ask answers a query with conversational memory and retrieved context.
func (s *Session) Ask(ctx context.Context, query string) (*domain.GenerationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, err
	}

	answer, err := s.llm.Complete(ctx, buildAnswerPrompt(s.exchanges, results, query))
	if err != nil {
		return nil, err
	}

	s.exchanges = append(s.exchanges, exchange{question: query, answer: answer})

	return &domain.GenerationResult{
		Answer:  answer,
		Sources: sourcesFromResults(results),
	}, nil
}

// buildAnswerPrompt assembles the system instruction, retrieved passages,
// prior conversation, and the current question into one completion prompt.
func buildAnswerPrompt(history []exchange, results []vectorstore.Result, query string) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant answering questions about a collection of documents. ")
	b.WriteString("Answer accurately based on the provided context. ")
	b.WriteString("If the answer is not in the context, say you do not have enough information.\n\n")

	b.WriteString("Context from the documents:\n")
	for i, res := range results {
		filename, _ := res.Entry.Metadata[domain.MetadataKeySourceFilename].(string)
		fmt.Fprintf(&b, "Context %d [%s]:\n%s\n\n", i+1, filename, res.Entry.Text)
	}

	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, ex := range history {
			fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", ex.question, ex.answer)
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: " + query + "\n\nAnswer: ")
	return b.String()
}
