// Package interaction records the outcome of every resolved question in the append-only log
package interaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/luna/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store appends entries to the interaction log
type Store interface {
	CreateEntry(ctx context.Context, entry *domain.InteractionLogEntry) (int64, error)
}

// Entry is a single outcome to record. Score and Feedback are optional.
type Entry struct {
	UserMessage string
	AIResponse  string
	Source      domain.Source
	Score       *float64
	Feedback    *string
	IP          string
	UserAgent   string
}

// Logger writes interaction log entries. It never updates existing entries.
type Logger struct {
	store Store
	log   lgr.L
}

// NewLogger makes an interaction logger
func NewLogger(store Store, l lgr.L) *Logger {
	if l == nil {
		l = lgr.NoOp
	}
	return &Logger{store: store, log: l}
}

// Record appends one entry and returns its id
func (l *Logger) Record(ctx context.Context, e Entry) (int64, error) {
	if !e.Source.Valid() {
		return 0, fmt.Errorf("record interaction: unknown source %q", e.Source)
	}
	if strings.TrimSpace(e.UserMessage) == "" {
		return 0, fmt.Errorf("record interaction: empty user message")
	}

	entry := &domain.InteractionLogEntry{
		UserMessage: e.UserMessage,
		AIResponse:  e.AIResponse,
		Source:      e.Source,
		Score:       e.Score,
		Feedback:    e.Feedback,
		IP:          e.IP,
		UserAgent:   e.UserAgent,
	}
	id, err := l.store.CreateEntry(ctx, entry)
	if err != nil {
		return 0, fmt.Errorf("record interaction: %w", err)
	}
	l.log.Logf("[DEBUG] recorded interaction %d, source %s", id, e.Source)
	return id, nil
}

// Float returns a pointer to v, for optional entry fields
func Float(v float64) *float64 { return &v }

// String returns a pointer to s, for optional entry fields
func String(s string) *string { return &s }
