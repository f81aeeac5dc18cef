package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/repository"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/vectorstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedCompleter returns queued responses in order and records every
// prompt it receives.
type scriptedCompleter struct {
	responses []scriptedResponse
	calls     []string
}

type scriptedResponse struct {
	text string
	err  error
}

func (c *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.calls = append(c.calls, prompt)
	if len(c.responses) == 0 {
		return "", errors.New("no scripted response left")
	}
	r := c.responses[0]
	c.responses = c.responses[1:]
	return r.text, r.err
}

type fakeEmbedder struct {
	err error
}

func (e *fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

func (e *fakeEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []float32{1, 0}, nil
}

type fakeStore struct {
	results []vectorstore.Result
	err     error
}

func (s *fakeStore) Add(_ []vectorstore.Entry) error { return nil }

func (s *fakeStore) Search(_ []float32, _ int) ([]vectorstore.Result, error) {
	return s.results, s.err
}

func (s *fakeStore) Count() int { return len(s.results) }

func passageResult(text, filename string, page int) vectorstore.Result {
	return vectorstore.Result{
		Entry: vectorstore.Entry{
			ID:   "e1",
			Text: text,
			Metadata: map[string]any{
				domain.MetadataKeySourceFilename: filename,
				domain.MetadataKeyPageNumber:     page,
			},
			Vector: []float32{1, 0},
		},
		Score: 0.9,
	}
}

func newTestHistory(t *testing.T) *repository.HistoryRepository {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewHistoryRepository(db)
}

func TestChatWithoutModel(t *testing.T) {
	store := &fakeStore{results: []vectorstore.Result{
		passageResult("Admissions open on June 1.", "handbook.pdf", 3),
	}}
	history := newTestHistory(t)
	svc := NewChatService(nil, NewRetriever(&fakeEmbedder{}, store, 5), history, zap.NewNop())

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{
		Query: "When do admissions open?", SessionID: "s1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Admissions open on June 1.", resp.Answer)
	assert.Equal(t, []domain.SourceRef{{Filename: "handbook.pdf", Page: 3}}, resp.Sources)
	assert.Equal(t, "Admissions open on June 1.", resp.Summary, "short answers are their own summary")

	turns, err := history.List()
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.False(t, turns[0].Failed)
	assert.Equal(t, "When do admissions open?", turns[0].Query)
}

func TestChatPipelineFailureReturnsApology(t *testing.T) {
	store := &fakeStore{err: errors.New("index unavailable")}
	history := newTestHistory(t)
	svc := NewChatService(nil, NewRetriever(&fakeEmbedder{}, store, 5), history, zap.NewNop())

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{Query: "anything", SessionID: "s1"})

	require.NoError(t, err, "pipeline failures degrade to an apology, not an error")
	assert.Equal(t, apologyMessage, resp.Answer)
	assert.Empty(t, resp.Sources)
	assert.Empty(t, resp.Summary)

	turns, err := history.List()
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.True(t, turns[0].Failed)
}

func TestChatNoMatchesReturnsApology(t *testing.T) {
	history := newTestHistory(t)
	svc := NewChatService(nil, NewRetriever(&fakeEmbedder{}, &fakeStore{}, 5), history, zap.NewNop())

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{Query: "anything", SessionID: "s1"})

	require.NoError(t, err)
	assert.Equal(t, apologyMessage, resp.Answer)
}

func TestChatTranslationRoundTrip(t *testing.T) {
	completer := &scriptedCompleter{responses: []scriptedResponse{
		{text: `{"language": "hi", "translated_text": "When do exams start?"}`},
		{text: "Exams begin in May."},
		{text: "परीक्षा मई में शुरू होती है।"},
		{text: "Exams start in May."},
	}}
	store := &fakeStore{results: []vectorstore.Result{
		passageResult("The examination schedule begins in May.", "calendar.pdf", 2),
	}}
	history := newTestHistory(t)
	svc := NewChatService(completer, NewRetriever(&fakeEmbedder{}, store, 5), history, zap.NewNop())

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{
		Query: "परीक्षा कब शुरू होती है?", SessionID: "s1",
	})

	require.NoError(t, err)
	assert.Equal(t, "परीक्षा मई में शुरू होती है।", resp.Answer, "answer must come back in the query language")
	assert.Equal(t, "Exams start in May.", resp.Summary)
	assert.Equal(t, []domain.SourceRef{{Filename: "calendar.pdf", Page: 2}}, resp.Sources)

	require.Len(t, completer.calls, 4)
	assert.Contains(t, completer.calls[1], "When do exams start?", "generation must use the translated query")
	assert.Contains(t, completer.calls[1], "The examination schedule begins in May.")
	assert.Contains(t, completer.calls[2], "Exams begin in May.", "back-translation must carry the English answer")
}

func TestChatEnglishSkipsBackTranslation(t *testing.T) {
	completer := &scriptedCompleter{responses: []scriptedResponse{
		{text: `{"language": "en", "translated_text": "When do exams start?"}`},
		{text: "Exams begin in May."},
		{text: "Exams start in May."},
	}}
	store := &fakeStore{results: []vectorstore.Result{
		passageResult("The examination schedule begins in May.", "calendar.pdf", 2),
	}}
	history := newTestHistory(t)
	svc := NewChatService(completer, NewRetriever(&fakeEmbedder{}, store, 5), history, zap.NewNop())

	resp, err := svc.Chat(context.Background(), &domain.ChatRequest{
		Query: "When do exams start?", SessionID: "s1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Exams begin in May.", resp.Answer)
	assert.Len(t, completer.calls, 3, "English answers must not be back-translated")
}

func TestChatSessionMemory(t *testing.T) {
	completer := &scriptedCompleter{responses: []scriptedResponse{
		{text: `{"language": "en", "translated_text": "What subjects are taught?"}`},
		{text: "Math and Physics are taught."},
		{text: "Math and Physics."},
		{text: `{"language": "en", "translated_text": "Who teaches the first one?"}`},
		{text: "Dr. Rao teaches Math."},
		{text: "Dr. Rao."},
	}}
	store := &fakeStore{results: []vectorstore.Result{
		passageResult("Subjects: Math (Dr. Rao), Physics (Dr. Sen).", "faculty.pdf", 1),
	}}
	history := newTestHistory(t)
	svc := NewChatService(completer, NewRetriever(&fakeEmbedder{}, store, 5), history, zap.NewNop())

	_, err := svc.Chat(context.Background(), &domain.ChatRequest{
		Query: "What subjects are taught?", SessionID: "s1",
	})
	require.NoError(t, err)

	_, err = svc.Chat(context.Background(), &domain.ChatRequest{
		Query: "Who teaches the first one?", SessionID: "s1",
	})
	require.NoError(t, err)

	require.Len(t, completer.calls, 6)
	secondGeneration := completer.calls[4]
	assert.Contains(t, secondGeneration, "Conversation so far:")
	assert.Contains(t, secondGeneration, "User: What subjects are taught?")
	assert.Contains(t, secondGeneration, "Assistant: Math and Physics are taught.")
}

func TestChatSessionsAreIsolated(t *testing.T) {
	completer := &scriptedCompleter{responses: []scriptedResponse{
		{text: `{"language": "en", "translated_text": "first question"}`},
		{text: "first answer"},
		{text: "summary"},
		{text: `{"language": "en", "translated_text": "second question"}`},
		{text: "second answer"},
		{text: "summary"},
	}}
	store := &fakeStore{results: []vectorstore.Result{
		passageResult("some passage", "doc.pdf", 1),
	}}
	history := newTestHistory(t)
	svc := NewChatService(completer, NewRetriever(&fakeEmbedder{}, store, 5), history, zap.NewNop())

	_, err := svc.Chat(context.Background(), &domain.ChatRequest{Query: "first question", SessionID: "a"})
	require.NoError(t, err)
	_, err = svc.Chat(context.Background(), &domain.ChatRequest{Query: "second question", SessionID: "b"})
	require.NoError(t, err)

	secondGeneration := completer.calls[4]
	assert.NotContains(t, secondGeneration, "Conversation so far:",
		"a fresh session must not see another session's history")
}

func TestChatPersistenceFailureIsFatal(t *testing.T) {
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	history := repository.NewHistoryRepository(db)
	require.NoError(t, db.Close())

	store := &fakeStore{results: []vectorstore.Result{
		passageResult("some passage", "doc.pdf", 1),
	}}
	svc := NewChatService(nil, NewRetriever(&fakeEmbedder{}, store, 5), history, zap.NewNop())

	_, err = svc.Chat(context.Background(), &domain.ChatRequest{Query: "q", SessionID: "s"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestMechanicalSummary(t *testing.T) {
	short := "A short answer."
	assert.Equal(t, short, mechanicalSummary(short))

	long := strings.Repeat("a", 250)
	got := mechanicalSummary(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("a", 200)+"...", got)
}
