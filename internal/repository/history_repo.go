package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smit-faldu/Language-Agnostic-Chatbot/internal/domain"
)

// HistoryRepository persists chat turns append-only. Inserts are serialized
// by the database, so concurrent requests cannot corrupt or lose entries.
type HistoryRepository struct {
	db *DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Append durably records one chat turn. Failures are wrapped as
// domain.ErrPersistence and must be treated as fatal to the request.
func (r *HistoryRepository) Append(turn *domain.ChatTurn) error {
	if turn.ID == "" {
		turn.ID = uuid.New().String()
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}

	sourcesJSON, err := json.Marshal(turn.Sources)
	if err != nil {
		return fmt.Errorf("%w: encode sources: %v", domain.ErrPersistence, err)
	}

	_, err = r.db.Exec(`
		INSERT INTO chat_turns (id, session_id, query, answer, summary, sources, failed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, turn.ID, turn.SessionID, turn.Query, turn.Answer, turn.Summary,
		string(sourcesJSON), turn.Failed, turn.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

// List returns the full history in chronological (insertion) order.
func (r *HistoryRepository) List() ([]domain.ChatTurn, error) {
	rows, err := r.db.Query(`
		SELECT id, session_id, query, answer, summary, sources, failed, created_at
		FROM chat_turns
		ORDER BY created_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []domain.ChatTurn
	for rows.Next() {
		var turn domain.ChatTurn
		var summary, sourcesJSON sql.NullString

		if err := rows.Scan(&turn.ID, &turn.SessionID, &turn.Query, &turn.Answer,
			&summary, &sourcesJSON, &turn.Failed, &turn.Timestamp); err != nil {
			return nil, err
		}

		if summary.Valid {
			turn.Summary = summary.String
		}
		turn.Sources = []domain.SourceRef{}
		if sourcesJSON.Valid && sourcesJSON.String != "" {
			if err := json.Unmarshal([]byte(sourcesJSON.String), &turn.Sources); err != nil {
				return nil, fmt.Errorf("%w: decode sources for turn %s: %v", domain.ErrPersistence, turn.ID, err)
			}
		}
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}
