package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/llm"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/repository"
	"go.uber.org/zap"
)

// apologyMessage is the only failure text ever shown to users; no error
// detail leaks to the client.
const apologyMessage = "Sorry, I could not find an answer. Please contact the office."

// mechanicalSummaryLimit is the truncation length used when no language
// model is available to summarize the answer.
const mechanicalSummaryLimit = 200

// ChatService orchestrates a chat request: language detection and
// translation, session-scoped answer generation, back-translation, source
// attribution, summarization, and durable history logging.
type ChatService struct {
	llm       llm.Completer // nil when no language model is configured
	retriever *Retriever
	history   *repository.HistoryRepository
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewChatService creates a chat service. completer may be nil, in which case
// answers come from stateless retrieval.
func NewChatService(
	completer llm.Completer,
	retriever *Retriever,
	history *repository.HistoryRepository,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		llm:       completer,
		retriever: retriever,
		history:   history,
		logger:    logger,
		sessions:  make(map[string]*Session),
	}
}

// Chat answers one question. Any pipeline failure degrades to a fixed
// apology and is logged as a failed turn; only a history write failure is
// returned as an error (fatal to the request).
func (s *ChatService) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	answer, sources, summary, err := s.answer(ctx, req)
	if err != nil {
		s.logger.Warn("chat pipeline failed",
			zap.String("session_id", req.SessionID), zap.Error(err))
		answer, sources, summary = apologyMessage, []domain.SourceRef{}, ""
	}

	turn := &domain.ChatTurn{
		Query:     req.Query,
		Answer:    answer,
		SessionID: req.SessionID,
		Timestamp: time.Now().UTC(),
		Sources:   sources,
		Summary:   summary,
		Failed:    err != nil,
	}
	if perr := s.history.Append(turn); perr != nil {
		return nil, perr
	}

	return &domain.ChatResponse{Answer: answer, Sources: sources, Summary: summary}, nil
}

// answer runs the fallible part of the pipeline. Translation itself never
// fails (it defaults to English), but generation, back-translation, and
// summarization errors all surface here and trigger the apology path.
func (s *ChatService) answer(ctx context.Context, req *domain.ChatRequest) (string, []domain.SourceRef, string, error) {
	language, translated := "en", req.Query
	if s.llm != nil {
		language, translated = llm.DetectAndTranslate(ctx, s.llm, req.Query, s.logger)
	}

	var result *domain.GenerationResult
	var err error
	if s.llm != nil {
		result, err = s.getOrCreateSession(req.SessionID).Ask(ctx, translated)
	} else {
		// No model configured: stateless retrieval, original query as-is.
		result, err = s.retriever.Query(ctx, req.Query)
	}
	if err != nil {
		return "", nil, "", fmt.Errorf("%w: %v", domain.ErrChatPipeline, err)
	}

	answer := result.Answer
	if language != "en" && s.llm != nil {
		answer, err = s.llm.Complete(ctx, llm.BackTranslatePrompt(language, answer))
		if err != nil {
			return "", nil, "", fmt.Errorf("%w: back-translation: %v", domain.ErrChatPipeline, err)
		}
	}

	sources := result.Sources
	if sources == nil {
		sources = []domain.SourceRef{}
	}

	var summary string
	if s.llm != nil {
		summary, err = s.llm.Complete(ctx, llm.AnswerSummaryPrompt(answer))
		if err != nil {
			return "", nil, "", fmt.Errorf("%w: summarization: %v", domain.ErrChatPipeline, err)
		}
	} else {
		summary = mechanicalSummary(answer)
	}

	return answer, sources, summary, nil
}

// getOrCreateSession returns the conversational engine for a session id,
// creating it at most once.
func (s *ChatService) getOrCreateSession(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[id]; ok {
		return session
	}
	session := newSession(s.llm, s.retriever)
	s.sessions[id] = session
	return session
}

// mechanicalSummary truncates the answer when no model is available.
func mechanicalSummary(answer string) string {
	runes := []rune(answer)
	if len(runes) <= mechanicalSummaryLimit {
		return answer
	}
	return strings.TrimSpace(string(runes[:mechanicalSummaryLimit])) + "..."
}
