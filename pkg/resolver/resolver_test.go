package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/interaction"
	"github.com/umputun/luna/pkg/resolver/mocks"
)

func newRecorder() *mocks.RecorderMock {
	return &mocks.RecorderMock{
		RecordFunc: func(ctx context.Context, e interaction.Entry) (int64, error) { return 1, nil },
	}
}

func TestService_KnowledgeBaseHit(t *testing.T) {
	matcher := &mocks.MatcherMock{
		ResolveFunc: func(ctx context.Context, question string) *domain.QARecord {
			return &domain.QARecord{ID: 1, Question: "What is Luna?", Answer: "Luna is a chatbot."}
		},
	}
	completer := &mocks.CompleterMock{}
	recorder := newRecorder()
	svc := New(matcher, completer, recorder, lgr.NoOp)

	answer, err := svc.Resolve(context.Background(), " what is luna? ", RequestMeta{IP: "10.0.0.1", UserAgent: "ua", RequestID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "Luna is a chatbot.", answer)

	assert.Equal(t, "what is luna?", matcher.ResolveCalls()[0].Question)
	assert.Empty(t, completer.CompleteCalls(), "completion is bypassed on a knowledge base hit")
	require.Len(t, recorder.RecordCalls(), 1)
	e := recorder.RecordCalls()[0].E
	assert.Equal(t, interaction.Entry{
		UserMessage: "what is luna?", AIResponse: "Luna is a chatbot.", Source: domain.SourceManual,
		IP: "10.0.0.1", UserAgent: "ua",
	}, e)
}

func TestService_CompletionPaths(t *testing.T) {
	tbl := []struct {
		name string
		res  domain.Completion
	}{
		{name: "primary", res: domain.Completion{Text: "gpt answer", Source: domain.SourceGPT, Score: 8.5, Feedback: "Good response"}},
		{name: "fallback", res: domain.Completion{Text: "fallback answer", Source: domain.SourceGPTFallback, Score: 7, Feedback: "Fallback response"}},
		{name: "static", res: domain.Completion{Text: "sorry", Source: domain.SourceGPTError, Score: 0, Feedback: "API Error: down"}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			matcher := &mocks.MatcherMock{
				ResolveFunc: func(ctx context.Context, question string) *domain.QARecord { return nil },
			}
			completer := &mocks.CompleterMock{
				CompleteFunc: func(ctx context.Context, question string) domain.Completion { return tt.res },
			}
			recorder := newRecorder()
			svc := New(matcher, completer, recorder, lgr.NoOp)

			answer, err := svc.Resolve(context.Background(), "tell me a joke", RequestMeta{IP: "10.0.0.2"})
			require.NoError(t, err)
			assert.Equal(t, tt.res.Text, answer)

			require.Len(t, completer.CompleteCalls(), 1)
			assert.Equal(t, "tell me a joke", completer.CompleteCalls()[0].Question)
			require.Len(t, recorder.RecordCalls(), 1, "exactly one log entry")
			e := recorder.RecordCalls()[0].E
			assert.Equal(t, tt.res.Source, e.Source)
			assert.Equal(t, tt.res.Text, e.AIResponse)
			assert.Equal(t, "10.0.0.2", e.IP)
			require.NotNil(t, e.Score)
			assert.InDelta(t, tt.res.Score, *e.Score, 0.0001)
			require.NotNil(t, e.Feedback)
			assert.Equal(t, tt.res.Feedback, *e.Feedback)
		})
	}
}

func TestService_ValidationError(t *testing.T) {
	matcher := &mocks.MatcherMock{}
	completer := &mocks.CompleterMock{}
	recorder := &mocks.RecorderMock{}
	svc := New(matcher, completer, recorder, nil)

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := svc.Resolve(context.Background(), q, RequestMeta{})
		require.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, matcher.ResolveCalls())
	assert.Empty(t, completer.CompleteCalls())
	assert.Empty(t, recorder.RecordCalls())
}

func TestService_RecordFailureDoesNotBlockAnswer(t *testing.T) {
	matcher := &mocks.MatcherMock{
		ResolveFunc: func(ctx context.Context, question string) *domain.QARecord {
			return &domain.QARecord{ID: 3, Answer: "stored answer"}
		},
	}
	recorder := &mocks.RecorderMock{
		RecordFunc: func(ctx context.Context, e interaction.Entry) (int64, error) {
			return 0, errors.New("database is locked")
		},
	}
	svc := New(matcher, &mocks.CompleterMock{}, recorder, lgr.NoOp)

	answer, err := svc.Resolve(context.Background(), "question", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "stored answer", answer)
	assert.Len(t, recorder.RecordCalls(), 1, "not retried at this level")
}

func TestService_RecordSurvivesCanceledRequest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	matcher := &mocks.MatcherMock{
		ResolveFunc: func(ctx context.Context, question string) *domain.QARecord { return nil },
	}
	completer := &mocks.CompleterMock{
		CompleteFunc: func(ctx context.Context, question string) domain.Completion {
			cancel() // client went away while the model was answering
			return domain.Completion{Text: "late answer", Source: domain.SourceGPT, Score: 8.5, Feedback: "Good response"}
		},
	}
	recorder := &mocks.RecorderMock{
		RecordFunc: func(ctx context.Context, e interaction.Entry) (int64, error) {
			assert.NoError(t, ctx.Err())
			return 1, nil
		},
	}
	svc := New(matcher, completer, recorder, lgr.NoOp)

	answer, err := svc.Resolve(ctx, "question", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "late answer", answer)
	assert.Len(t, recorder.RecordCalls(), 1)
}
