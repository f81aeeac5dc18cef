package service

import (
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/repository"
)

// recentQueryLimit bounds the recent-turn window in the stats response.
const recentQueryLimit = 10

// StatsService computes usage analytics on demand from the full persisted
// chat history. There is no incremental state and no caching: two calls
// without intervening chat activity return identical results.
type StatsService struct {
	history *repository.HistoryRepository
}

// NewStatsService creates a stats service.
func NewStatsService(history *repository.HistoryRepository) *StatsService {
	return &StatsService{history: history}
}

// Stats aggregates the full history: totals, the most recent turns in
// original order, failed queries, and per-calendar-day counts keyed by the
// UTC date of each timestamp.
func (s *StatsService) Stats() (*domain.StatsResponse, error) {
	turns, err := s.history.List()
	if err != nil {
		return nil, err
	}

	resp := &domain.StatsResponse{
		TotalQueries:    len(turns),
		RecentQueries:   []domain.ChatTurn{},
		FailedQuestions: []string{},
		DailyStats:      map[string]int{},
	}

	for _, turn := range turns {
		if turn.Failed {
			resp.Failed++
			resp.FailedQuestions = append(resp.FailedQuestions, turn.Query)
		}
		resp.DailyStats[turn.Timestamp.UTC().Format("2006-01-02")]++
	}
	resp.Successful = resp.TotalQueries - resp.Failed

	start := len(turns) - recentQueryLimit
	if start < 0 {
		start = 0
	}
	resp.RecentQueries = append(resp.RecentQueries, turns[start:]...)

	return resp, nil
}
