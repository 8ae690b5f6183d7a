package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/luna/pkg/config"
	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/settings"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer
//go:generate moq -out mocks/settings_provider.go -pkg mocks -skip-ensure -fmt goimports . SettingsProvider

// Completer makes a single completion call
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// SettingsProvider returns current runtime settings
type SettingsProvider interface {
	Get(ctx context.Context) settings.Settings
}

// feedback texts recorded with completions
const (
	feedbackPrimary  = "Good response"
	feedbackFallback = "Fallback response"
)

// ErrNoAPIKey is reported when the OpenAI key is missing or left at a placeholder value
var ErrNoAPIKey = errors.New("OpenAI API key not configured")

// jitterMargin covers the random jitter repeater adds to backoff delays
const jitterMargin = 1.1

// Orchestrator produces an answer for every question: primary model with retries,
// then one fallback model attempt, then the static fallback text.
type Orchestrator struct {
	client   Completer
	settings SettingsProvider
	cfg      config.LLMConfig
	log      lgr.L
}

// NewOrchestrator makes an orchestrator
func NewOrchestrator(client Completer, sp SettingsProvider, cfg config.LLMConfig, l lgr.L) *Orchestrator {
	if l == nil {
		l = lgr.NoOp
	}
	return &Orchestrator{client: client, settings: sp, cfg: cfg, log: l}
}

// Complete returns a completion for the question. It never fails and the text is never empty.
func (o *Orchestrator) Complete(ctx context.Context, question string) domain.Completion {
	s := o.settings.Get(ctx)

	if !s.HasUsableKey() {
		o.log.Logf("[WARN] %v, using static fallback", ErrNoAPIKey)
		return o.staticFallback(s, ErrNoAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, o.Budget(s.MaxRetries))
	defer cancel()

	primary := settings.ResolveModel(s.PrimaryModel)
	var text string
	var lastErr error
	attempt := 0
	retrier := repeater.NewBackoff(s.MaxRetries, o.cfg.BackoffBase, repeater.WithMaxDelay(o.cfg.BackoffMax))
	err := retrier.Do(ctx, func() error {
		attempt++
		res, err := o.attempt(ctx, "primary", s, primary, question)
		if err != nil {
			o.log.Logf("[WARN] primary model %s attempt %d/%d failed, %v", primary, attempt, s.MaxRetries, err)
			lastErr = err
			return err
		}
		text = res
		return nil
	})
	if err == nil {
		return domain.Completion{Text: text, Source: domain.SourceGPT, Score: o.cfg.PrimaryScore, Feedback: feedbackPrimary}
	}
	if lastErr == nil {
		lastErr = err // deadline hit before the first attempt
	}

	if s.FallbackEnabled() {
		fallback := settings.ResolveModel(s.FallbackModel)
		o.log.Logf("[INFO] primary model %s gave up, trying fallback model %s", primary, fallback)
		res, err := o.attempt(ctx, "fallback", s, fallback, question)
		if err == nil {
			return domain.Completion{Text: res, Source: domain.SourceGPTFallback, Score: o.cfg.FallbackScore, Feedback: feedbackFallback}
		}
		o.log.Logf("[WARN] fallback model %s failed, %v", fallback, err)
		lastErr = err
	}

	return o.staticFallback(s, lastErr)
}

// Budget is the longest time Complete may spend on network calls: every primary attempt plus
// one fallback attempt, each bounded by the attempt timeout, plus all backoff delays between
// primary attempts.
func (o *Orchestrator) Budget(maxRetries int) time.Duration {
	if maxRetries < 1 {
		maxRetries = 1
	}
	total := o.cfg.Timeout * time.Duration(maxRetries+1)
	for i := 1; i < maxRetries; i++ {
		delay := o.cfg.BackoffBase * time.Duration(1<<(i-1))
		if o.cfg.BackoffMax > 0 && delay > o.cfg.BackoffMax {
			delay = o.cfg.BackoffMax
		}
		total += time.Duration(float64(delay) * jitterMargin)
	}
	return total
}

// attempt makes one completion call bounded by the per-attempt timeout
func (o *Orchestrator) attempt(ctx context.Context, role string, s settings.Settings, model, question string) (string, error) {
	actx, cancel := context.WithTimeout(ctx, o.cfg.Timeout)
	defer cancel()

	st := time.Now()
	text, err := o.client.Complete(actx, domain.CompletionRequest{
		APIKey:       s.OpenAIKey,
		Model:        model,
		SystemPrompt: s.SystemPrompt,
		Question:     question,
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyCompletion
	}
	recordAttempt(role, err, time.Since(st).Seconds())
	return text, err
}

func (o *Orchestrator) staticFallback(s settings.Settings, err error) domain.Completion {
	staticFallbacksTotal.Inc()
	text := strings.TrimSpace(s.FallbackResponse)
	if text == "" {
		text = settings.DefaultFallbackResponse
	}
	return domain.Completion{
		Text:     text,
		Source:   domain.SourceGPTError,
		Score:    0,
		Feedback: fmt.Sprintf("API Error: %v", err),
	}
}
