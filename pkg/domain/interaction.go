package domain

import "time"

// Source records which resolution path produced an answer
type Source string

const (
	SourceManual      Source = "manual"
	SourceGPT         Source = "gpt"
	SourceGPTFallback Source = "gpt-fallback"
	SourceGPTError    Source = "gpt-error"
)

// Valid reports whether the source is one of the known values
func (s Source) Valid() bool {
	switch s {
	case SourceManual, SourceGPT, SourceGPTFallback, SourceGPTError:
		return true
	}
	return false
}

// InteractionLogEntry is a single recorded question/answer exchange.
// Entries are append-only; only Trained may be flipped later by curation.
type InteractionLogEntry struct {
	ID          int64
	UserMessage string
	AIResponse  string
	Source      Source
	Score       *float64
	Feedback    *string
	IP          string
	UserAgent   string
	CreatedAt   time.Time
	Trained     bool
	InKnowledge bool // read-only, a knowledge base record with the same question exists
}

// Completion is the outcome of the completion orchestrator
type Completion struct {
	Text     string
	Source   Source
	Score    float64
	Feedback string
}

// CompletionRequest is a single chat completion call
type CompletionRequest struct {
	APIKey       string
	Model        string // vendor model name, already aliased
	SystemPrompt string
	Question     string
}
