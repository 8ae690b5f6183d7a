package interaction

import (
	"context"
	"errors"
	"testing"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/interaction/mocks"
)

func TestLogger_Record(t *testing.T) {
	store := &mocks.StoreMock{
		CreateEntryFunc: func(ctx context.Context, entry *domain.InteractionLogEntry) (int64, error) {
			return 42, nil
		},
	}
	l := NewLogger(store, lgr.NoOp)

	id, err := l.Record(context.Background(), Entry{
		UserMessage: "what is luna?",
		AIResponse:  "Luna is a chatbot.",
		Source:      domain.SourceGPT,
		Score:       Float(8.5),
		Feedback:    String("Good response"),
		IP:          "10.0.0.1",
		UserAgent:   "ua",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.Len(t, store.CreateEntryCalls(), 1)
	got := store.CreateEntryCalls()[0].Entry
	assert.Equal(t, "what is luna?", got.UserMessage)
	assert.Equal(t, "Luna is a chatbot.", got.AIResponse)
	assert.Equal(t, domain.SourceGPT, got.Source)
	require.NotNil(t, got.Score)
	assert.InDelta(t, 8.5, *got.Score, 0.0001)
	require.NotNil(t, got.Feedback)
	assert.Equal(t, "Good response", *got.Feedback)
	assert.Equal(t, "10.0.0.1", got.IP)
	assert.Equal(t, "ua", got.UserAgent)
	assert.Zero(t, got.ID)
	assert.False(t, got.Trained)
}

func TestLogger_RecordOptionalFields(t *testing.T) {
	store := &mocks.StoreMock{
		CreateEntryFunc: func(ctx context.Context, entry *domain.InteractionLogEntry) (int64, error) { return 1, nil },
	}
	l := NewLogger(store, nil)
	_, err := l.Record(context.Background(), Entry{UserMessage: "q", AIResponse: "a", Source: domain.SourceManual})
	require.NoError(t, err)
	got := store.CreateEntryCalls()[0].Entry
	assert.Nil(t, got.Score)
	assert.Nil(t, got.Feedback)
}

func TestLogger_RecordErrors(t *testing.T) {
	store := &mocks.StoreMock{
		CreateEntryFunc: func(ctx context.Context, entry *domain.InteractionLogEntry) (int64, error) {
			return 0, errors.New("disk full")
		},
	}
	l := NewLogger(store, lgr.NoOp)

	_, err := l.Record(context.Background(), Entry{UserMessage: "q", AIResponse: "a", Source: domain.SourceGPT})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, store.CreateEntryCalls(), 1)

	_, err = l.Record(context.Background(), Entry{UserMessage: "q", AIResponse: "a", Source: "webhook"})
	require.Error(t, err)
	_, err = l.Record(context.Background(), Entry{UserMessage: " ", AIResponse: "a", Source: domain.SourceGPT})
	require.Error(t, err)
	assert.Len(t, store.CreateEntryCalls(), 1, "invalid entries never reach the store")
}
