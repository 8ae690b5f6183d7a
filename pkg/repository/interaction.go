package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/luna/pkg/domain"
)

// InteractionRepository handles the append-only interaction log (response_logs)
type InteractionRepository struct {
	db *sqlx.DB
}

// interactionSQL represents a log entry for SQL operations
type interactionSQL struct {
	ID          int64           `db:"id"`
	UserMessage string          `db:"user_message"`
	AIResponse  string          `db:"ai_response"`
	Source      string          `db:"source"`
	Score       sql.NullFloat64 `db:"score"`
	Feedback    sql.NullString  `db:"feedback"`
	IP          string          `db:"ip_address"`
	UserAgent   string          `db:"user_agent"`
	CreatedAt   time.Time       `db:"created_at"`
	Trained     bool            `db:"trained"`
	InKnowledge bool            `db:"in_knowledge"`
}

// interactionColumns also reports whether any knowledge base record already has the same question
const interactionColumns = `id, user_message, ai_response, source, score, feedback, ip_address, user_agent, created_at, trained,
	EXISTS(SELECT 1 FROM prompt_data p WHERE ulower(p.question) = ulower(response_logs.user_message)) AS in_knowledge`

// LogFilter selects interaction log entries, zero values don't filter
type LogFilter struct {
	Source  domain.Source
	Trained *bool
	Limit   int
	Offset  int
}

// NewInteractionRepository creates a new interaction log repository
func NewInteractionRepository(db *sqlx.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// CreateEntry appends a log entry and returns its id.
// Only lock errors are retried, a failed insert leaves no row behind so retries can't duplicate it.
func (r *InteractionRepository) CreateEntry(ctx context.Context, entry *domain.InteractionLogEntry) (int64, error) {
	if !entry.Source.Valid() {
		return 0, fmt.Errorf("create entry: unknown source %q", entry.Source)
	}

	row := interactionSQL{
		UserMessage: entry.UserMessage,
		AIResponse:  entry.AIResponse,
		Source:      string(entry.Source),
		IP:          entry.IP,
		UserAgent:   entry.UserAgent,
	}
	if entry.Score != nil {
		row.Score = sql.NullFloat64{Float64: *entry.Score, Valid: true}
	}
	if entry.Feedback != nil {
		row.Feedback = sql.NullString{String: *entry.Feedback, Valid: true}
	}

	query := `
		INSERT INTO response_logs (user_message, ai_response, source, score, feedback, ip_address, user_agent)
		VALUES (:user_message, :ai_response, :source, :score, :feedback, :ip_address, :user_agent)
	`
	var id int64
	err := retryOnLock(ctx, func() error {
		result, err := r.db.NamedExecContext(ctx, query, row)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("create entry: %w", err)
	}

	entry.ID = id
	return id, nil
}

// GetEntry retrieves a log entry by ID
func (r *InteractionRepository) GetEntry(ctx context.Context, id int64) (*domain.InteractionLogEntry, error) {
	var row interactionSQL
	err := r.db.GetContext(ctx, &row, "SELECT "+interactionColumns+" FROM response_logs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get entry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return row.toDomain(), nil
}

// ListEntries returns the newest entries first, filtered by source and trained flag
func (r *InteractionRepository) ListEntries(ctx context.Context, filter LogFilter) ([]domain.InteractionLogEntry, error) {
	query := "SELECT " + interactionColumns + " FROM response_logs WHERE 1=1"
	args := []interface{}{}
	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, string(filter.Source))
	}
	if filter.Trained != nil {
		trained := 0
		if *filter.Trained {
			trained = 1
		}
		query += " AND trained = ?"
		args = append(args, trained)
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	var rows []interactionSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	res := make([]domain.InteractionLogEntry, len(rows))
	for i := range rows {
		res[i] = *rows[i].toDomain()
	}
	return res, nil
}

// CountBySource returns the number of entries per source
func (r *InteractionRepository) CountBySource(ctx context.Context) (map[domain.Source]int64, error) {
	var rows []struct {
		Source string `db:"source"`
		Count  int64  `db:"cnt"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT source, COUNT(*) AS cnt FROM response_logs GROUP BY source"); err != nil {
		return nil, fmt.Errorf("count by source: %w", err)
	}

	res := make(map[domain.Source]int64, len(rows))
	for _, row := range rows {
		res[domain.Source(row.Source)] = row.Count
	}
	return res, nil
}

// DeleteOlderThan removes entries created more than the given number of days ago
func (r *InteractionRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("delete older than: retention must be positive, got %d", days)
	}

	var deleted int64
	err := retryOnLock(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			"DELETE FROM response_logs WHERE created_at < datetime('now', ?)", fmt.Sprintf("-%d days", days))
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("delete older than: %w", err)
	}
	return deleted, nil
}

// toDomain converts interactionSQL to domain.InteractionLogEntry
func (i *interactionSQL) toDomain() *domain.InteractionLogEntry {
	entry := &domain.InteractionLogEntry{
		ID:          i.ID,
		UserMessage: i.UserMessage,
		AIResponse:  i.AIResponse,
		Source:      domain.Source(i.Source),
		IP:          i.IP,
		UserAgent:   i.UserAgent,
		CreatedAt:   i.CreatedAt,
		Trained:     i.Trained,
		InKnowledge: i.InKnowledge,
	}
	if i.Score.Valid {
		score := i.Score.Float64
		entry.Score = &score
	}
	if i.Feedback.Valid {
		fb := i.Feedback.String
		entry.Feedback = &fb
	}
	return entry
}
