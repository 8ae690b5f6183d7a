// Package resolver answers questions: knowledge base first, completion orchestrator on a miss,
// and exactly one interaction log entry for every answered question.
package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/interaction"
)

//go:generate moq -out mocks/matcher.go -pkg mocks -skip-ensure -fmt goimports . Matcher
//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder

// ErrValidation is returned for questions that are empty after trimming
var ErrValidation = errors.New("question is empty")

// Matcher looks up curated answers
type Matcher interface {
	Resolve(ctx context.Context, question string) *domain.QARecord
}

// Completer produces model answers, never fails
type Completer interface {
	Complete(ctx context.Context, question string) domain.Completion
}

// Recorder appends interaction log entries
type Recorder interface {
	Record(ctx context.Context, e interaction.Entry) (int64, error)
}

// RequestMeta carries caller details through the call chain
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
}

// Service composes matcher, completer and recorder
type Service struct {
	matcher   Matcher
	completer Completer
	recorder  Recorder
	log       lgr.L
}

// New makes a resolution service
func New(m Matcher, c Completer, r Recorder, l lgr.L) *Service {
	if l == nil {
		l = lgr.NoOp
	}
	return &Service{matcher: m, completer: c, recorder: r, log: l}
}

// Resolve returns the answer for a question. The only error is ErrValidation, in which case
// nothing is logged. Otherwise exactly one log entry is written and its failure doesn't
// block the answer.
func (s *Service) Resolve(ctx context.Context, question string, meta RequestMeta) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrValidation
	}
	st := time.Now()

	entry := interaction.Entry{UserMessage: question, IP: meta.IP, UserAgent: meta.UserAgent}
	if rec := s.matcher.Resolve(ctx, question); rec != nil {
		entry.AIResponse, entry.Source = rec.Answer, domain.SourceManual
	} else {
		res := s.completer.Complete(ctx, question)
		entry.AIResponse, entry.Source = res.Text, res.Source
		entry.Score, entry.Feedback = interaction.Float(res.Score), interaction.String(res.Feedback)
	}

	// the answer is already decided, a canceled request must not lose its log entry
	if _, err := s.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Logf("[WARN] can't record interaction for request %s, %v", meta.RequestID, err)
	}

	resolutionsTotal.WithLabelValues(string(entry.Source)).Inc()
	resolutionDuration.WithLabelValues(string(entry.Source)).Observe(time.Since(st).Seconds())
	s.log.Logf("[INFO] request %s answered from %s in %v", meta.RequestID, entry.Source, time.Since(st).Truncate(time.Millisecond))
	return entry.AIResponse, nil
}
