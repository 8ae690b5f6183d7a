package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/luna/pkg/config"
	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/llm/mocks"
	"github.com/umputun/luna/pkg/settings"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Timeout:       time.Second,
		BackoffBase:   time.Millisecond,
		BackoffMax:    5 * time.Millisecond,
		PrimaryScore:  8.5,
		FallbackScore: 7.0,
	}
}

func settingsProvider(s settings.Settings) *mocks.SettingsProviderMock {
	return &mocks.SettingsProviderMock{GetFunc: func(ctx context.Context) settings.Settings { return s }}
}

func baseSettings() settings.Settings {
	s, _ := settings.Parse(map[string]string{
		settings.KeyOpenAIKey:        "sk-test",
		settings.KeyPrimaryModel:     "gpt-4.1",
		settings.KeyFallbackModel:    "gpt-3.5-turbo",
		settings.KeyMaxRetries:       "3",
		settings.KeySystemPrompt:     "be helpful",
		settings.KeyFallbackResponse: "sorry, try later",
	})
	return s
}

func TestOrchestrator_PrimarySucceedsOnThirdAttempt(t *testing.T) {
	calls := 0
	client := &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "Luna is a chatbot.", nil
		},
	}
	o := NewOrchestrator(client, settingsProvider(baseSettings()), testLLMConfig(), lgr.NoOp)

	res := o.Complete(context.Background(), "what is luna?")
	assert.Equal(t, domain.Completion{Text: "Luna is a chatbot.", Source: domain.SourceGPT, Score: 8.5, Feedback: "Good response"}, res)

	require.Len(t, client.CompleteCalls(), 3)
	for _, c := range client.CompleteCalls() {
		assert.Equal(t, "gpt-4-turbo", c.Req.Model, "primary model is aliased")
		assert.Equal(t, "sk-test", c.Req.APIKey)
		assert.Equal(t, "be helpful", c.Req.SystemPrompt)
		assert.Equal(t, "what is luna?", c.Req.Question)
	}
}

func TestOrchestrator_FallbackSucceeds(t *testing.T) {
	client := &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			if req.Model == "gpt-3.5-turbo" {
				return "fallback answer", nil
			}
			return "", errors.New("500 internal error")
		},
	}
	o := NewOrchestrator(client, settingsProvider(baseSettings()), testLLMConfig(), lgr.NoOp)

	res := o.Complete(context.Background(), "q")
	assert.Equal(t, domain.Completion{Text: "fallback answer", Source: domain.SourceGPTFallback, Score: 7.0, Feedback: "Fallback response"}, res)

	calls := client.CompleteCalls()
	require.Len(t, calls, 4, "three primary attempts and one fallback")
	assert.Equal(t, "gpt-4-turbo", calls[2].Req.Model)
	assert.Equal(t, "gpt-3.5-turbo", calls[3].Req.Model)
}

func TestOrchestrator_AllFail(t *testing.T) {
	client := &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return "", errors.New("upstream down")
		},
	}
	o := NewOrchestrator(client, settingsProvider(baseSettings()), testLLMConfig(), lgr.NoOp)

	res := o.Complete(context.Background(), "q")
	assert.Equal(t, "sorry, try later", res.Text)
	assert.Equal(t, domain.SourceGPTError, res.Source)
	assert.Zero(t, res.Score)
	assert.Equal(t, "API Error: upstream down", res.Feedback)
	assert.Len(t, client.CompleteCalls(), 4)
}

func TestOrchestrator_NoFallbackAttempt(t *testing.T) {
	tbl := []struct {
		name     string
		primary  string
		fallback string
	}{
		{name: "none", primary: "gpt-4o", fallback: "none"},
		{name: "same as primary", primary: "gpt-4o", fallback: "gpt-4o"},
		{name: "same after aliasing", primary: "o4-mini", fallback: "gpt-4"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSettings()
			s.PrimaryModel, s.FallbackModel = tt.primary, tt.fallback
			client := &mocks.CompleterMock{
				CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
					return "", errors.New("fail")
				},
			}
			o := NewOrchestrator(client, settingsProvider(s), testLLMConfig(), lgr.NoOp)
			res := o.Complete(context.Background(), "q")
			assert.Equal(t, domain.SourceGPTError, res.Source)
			assert.Len(t, client.CompleteCalls(), 3, "primary attempts only")
		})
	}
}

func TestOrchestrator_EmptyTextIsFailure(t *testing.T) {
	calls := 0
	client := &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			calls++
			if calls == 1 {
				return "  ", nil
			}
			return "real answer", nil
		},
	}
	o := NewOrchestrator(client, settingsProvider(baseSettings()), testLLMConfig(), lgr.NoOp)
	res := o.Complete(context.Background(), "q")
	assert.Equal(t, "real answer", res.Text)
	assert.Equal(t, domain.SourceGPT, res.Source)
	assert.Len(t, client.CompleteCalls(), 2)
}

func TestOrchestrator_MaxRetries(t *testing.T) {
	for _, retries := range []int{1, 5} {
		s := baseSettings()
		s.MaxRetries = retries
		s.FallbackModel = settings.FallbackNone
		client := &mocks.CompleterMock{
			CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
				return "", errors.New("fail")
			},
		}
		o := NewOrchestrator(client, settingsProvider(s), testLLMConfig(), lgr.NoOp)
		_ = o.Complete(context.Background(), "q")
		assert.Len(t, client.CompleteCalls(), retries)
	}
}

func TestOrchestrator_PlaceholderKey(t *testing.T) {
	for _, key := range []string{"", "sk-your-openai-key", "placeholder_key"} {
		s := baseSettings()
		s.OpenAIKey = key
		client := &mocks.CompleterMock{}
		o := NewOrchestrator(client, settingsProvider(s), testLLMConfig(), nil)

		res := o.Complete(context.Background(), "q")
		assert.Equal(t, domain.SourceGPTError, res.Source)
		assert.Equal(t, "sorry, try later", res.Text)
		assert.Equal(t, "API Error: OpenAI API key not configured", res.Feedback)
		assert.Empty(t, client.CompleteCalls())
	}
}

func TestOrchestrator_EmptyStaticText(t *testing.T) {
	s := baseSettings()
	s.OpenAIKey = ""
	s.FallbackResponse = ""
	o := NewOrchestrator(&mocks.CompleterMock{}, settingsProvider(s), testLLMConfig(), lgr.NoOp)
	res := o.Complete(context.Background(), "q")
	assert.Equal(t, settings.DefaultFallbackResponse, res.Text)
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	client := &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			return "", ctx.Err()
		},
	}
	o := NewOrchestrator(client, settingsProvider(baseSettings()), testLLMConfig(), lgr.NoOp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := o.Complete(ctx, "q")
	assert.Equal(t, domain.SourceGPTError, res.Source)
	assert.NotEmpty(t, res.Text)
	assert.LessOrEqual(t, len(client.CompleteCalls()), 4)
}

func TestOrchestrator_AttemptTimeout(t *testing.T) {
	cfg := testLLMConfig()
	cfg.Timeout = 20 * time.Millisecond
	s := baseSettings()
	s.MaxRetries = 2
	s.FallbackModel = settings.FallbackNone
	client := &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, req domain.CompletionRequest) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	o := NewOrchestrator(client, settingsProvider(s), cfg, lgr.NoOp)

	st := time.Now()
	res := o.Complete(context.Background(), "q")
	assert.Equal(t, domain.SourceGPTError, res.Source)
	assert.Contains(t, res.Feedback, "deadline exceeded")
	assert.Less(t, time.Since(st), time.Second)
}

func TestOrchestrator_Budget(t *testing.T) {
	o := NewOrchestrator(nil, nil, config.LLMConfig{Timeout: 30 * time.Second, BackoffBase: time.Second, BackoffMax: 8 * time.Second}, nil)
	// 4 attempts of 30s plus 1s and 2s backoff with jitter margin
	assert.Equal(t, 120*time.Second+3300*time.Millisecond, o.Budget(3))
	// capped delays: 1,2,4,8,8
	assert.Equal(t, 210*time.Second+25300*time.Millisecond, o.Budget(6))
	assert.Equal(t, 60*time.Second, o.Budget(0))
}
