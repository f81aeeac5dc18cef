package domain

import "time"

// SourceRef is one citation: the file and page a retrieved passage came from.
type SourceRef struct {
	Filename string `json:"filename"`
	Page     int    `json:"page"`
}

// GenerationResult is the answer produced by either the session-scoped chat
// engine or the stateless retrieval fallback. Sources may be nil when the
// generation path exposes no source passages.
type GenerationResult struct {
	Answer  string
	Sources []SourceRef
}

// ChatTurn is one logged question/answer exchange. Turns are appended to the
// history and never mutated or deleted; the history is the sole analytics
// data source.
type ChatTurn struct {
	ID        string      `json:"id"`
	Query     string      `json:"query"`
	Answer    string      `json:"answer"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Sources   []SourceRef `json:"sources"`
	Summary   string      `json:"summary"`
	Failed    bool        `json:"failed"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query     string `json:"query" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Answer  string      `json:"answer"`
	Sources []SourceRef `json:"sources"`
	Summary string      `json:"summary"`
}

// StatsResponse is the body returned by GET /admin/stats.
type StatsResponse struct {
	TotalQueries    int            `json:"total_queries"`
	Successful      int            `json:"successful"`
	Failed          int            `json:"failed"`
	RecentQueries   []ChatTurn     `json:"recent_queries"`
	FailedQuestions []string       `json:"failed_questions"`
	DailyStats      map[string]int `json:"daily_stats"`
}
