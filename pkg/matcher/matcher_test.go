package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/luna/pkg/config"
	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/matcher/mocks"
)

func TestMatcher_ExactMatch(t *testing.T) {
	store := &mocks.StoreMock{
		FindActiveByQuestionFunc: func(ctx context.Context, question string) (*domain.QARecord, error) {
			return &domain.QARecord{ID: 1, Question: "What is Luna?", Answer: "Luna is a chatbot."}, nil
		},
		FindActiveByKeywordsFunc: func(ctx context.Context, keywords []string) ([]domain.QARecord, error) {
			t.Fatal("approximate lookup must not run after an exact hit")
			return nil, nil
		},
	}
	m := New(store, config.ResolverConfig{}, lgr.NoOp)

	rec := m.Resolve(context.Background(), "  what is luna?  ")
	require.NotNil(t, rec)
	assert.Equal(t, "Luna is a chatbot.", rec.Answer)
	require.Len(t, store.FindActiveByQuestionCalls(), 1)
	assert.Equal(t, "what is luna?", store.FindActiveByQuestionCalls()[0].Question)
	assert.Empty(t, store.FindActiveByKeywordsCalls())
}

func TestMatcher_ApproximateMatch(t *testing.T) {
	tbl := []struct {
		name       string
		question   string
		candidates []domain.QARecord
		wantID     int64 // 0 means no match
	}{
		{name: "above threshold", question: "tell me about pricing",
			candidates: []domain.QARecord{{ID: 7, Question: "pricing plan"}}, wantID: 7}, // 7/12
		{name: "below threshold", question: "tell me about pricing",
			candidates: []domain.QARecord{{ID: 7, Question: "pricing plan details"}}, wantID: 0}, // 7/20
		{name: "exactly half rejected", question: "luna",
			candidates: []domain.QARecord{{ID: 3, Question: "luna1234"}}, wantID: 0},
		{name: "best score wins", question: "reset password please",
			candidates: []domain.QARecord{
				{ID: 2, Question: "password policy and rules"},
				{ID: 5, Question: "password reset"},
			}, wantID: 5},
		{name: "tie keeps lowest id", question: "office hours",
			candidates: []domain.QARecord{
				{ID: 4, Question: "Office Hours"},
				{ID: 9, Question: "office hours"},
			}, wantID: 4},
		{name: "no candidates", question: "something unusual",
			candidates: []domain.QARecord{}, wantID: 0},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			store := &mocks.StoreMock{
				FindActiveByQuestionFunc: func(ctx context.Context, question string) (*domain.QARecord, error) {
					return nil, nil
				},
				FindActiveByKeywordsFunc: func(ctx context.Context, keywords []string) ([]domain.QARecord, error) {
					return tt.candidates, nil
				},
			}
			m := New(store, config.ResolverConfig{ApproxMode: config.ApproxModeKeywords}, lgr.NoOp)
			rec := m.Resolve(context.Background(), tt.question)
			if tt.wantID == 0 {
				assert.Nil(t, rec)
				return
			}
			require.NotNil(t, rec)
			assert.Equal(t, tt.wantID, rec.ID)
		})
	}
}

func TestMatcher_ShortTokensOnly(t *testing.T) {
	store := &mocks.StoreMock{
		FindActiveByQuestionFunc: func(ctx context.Context, question string) (*domain.QARecord, error) {
			return nil, nil
		},
	}
	m := New(store, config.ResolverConfig{}, lgr.NoOp)
	assert.Nil(t, m.Resolve(context.Background(), "who are you"))
	assert.Empty(t, store.FindActiveByKeywordsCalls())
}

func TestMatcher_KeywordsPassedToStore(t *testing.T) {
	store := &mocks.StoreMock{
		FindActiveByQuestionFunc: func(ctx context.Context, question string) (*domain.QARecord, error) {
			return nil, nil
		},
		FindActiveByKeywordsFunc: func(ctx context.Context, keywords []string) ([]domain.QARecord, error) {
			return nil, nil
		},
	}
	m := New(store, config.ResolverConfig{}, lgr.NoOp)
	assert.Nil(t, m.Resolve(context.Background(), "How do I Reset the PASSWORD reset"))
	require.Len(t, store.FindActiveByKeywordsCalls(), 1)
	assert.Equal(t, []string{"reset", "password"}, store.FindActiveByKeywordsCalls()[0].Keywords)
}

func TestMatcher_SubstringMode(t *testing.T) {
	candidates := []domain.QARecord{
		{ID: 1, Question: "password reset"},
		{ID: 2, Question: "Reset Password? reset password now"},
		{ID: 3, Question: "reset passwords"},
	}
	store := &mocks.StoreMock{
		FindActiveByQuestionFunc: func(ctx context.Context, question string) (*domain.QARecord, error) {
			return nil, nil
		},
		FindActiveByKeywordsFunc: func(ctx context.Context, keywords []string) ([]domain.QARecord, error) {
			return candidates, nil
		},
	}
	m := New(store, config.ResolverConfig{ApproxMode: config.ApproxModeSubstring}, lgr.NoOp)
	rec := m.Resolve(context.Background(), "reset password")
	require.NotNil(t, rec)
	assert.Equal(t, int64(2), rec.ID, "two occurrences beat one")

	store.FindActiveByKeywordsFunc = func(ctx context.Context, keywords []string) ([]domain.QARecord, error) {
		return candidates[:1], nil
	}
	assert.Nil(t, m.Resolve(context.Background(), "reset password"))
}

func TestMatcher_StoreErrors(t *testing.T) {
	t.Run("exact lookup failure", func(t *testing.T) {
		store := &mocks.StoreMock{
			FindActiveByQuestionFunc: func(ctx context.Context, question string) (*domain.QARecord, error) {
				return nil, errors.New("db down")
			},
		}
		m := New(store, config.ResolverConfig{}, lgr.NoOp)
		assert.Nil(t, m.Resolve(context.Background(), "what is luna?"))
	})

	t.Run("keyword lookup failure", func(t *testing.T) {
		store := &mocks.StoreMock{
			FindActiveByQuestionFunc: func(ctx context.Context, question string) (*domain.QARecord, error) {
				return nil, nil
			},
			FindActiveByKeywordsFunc: func(ctx context.Context, keywords []string) ([]domain.QARecord, error) {
				return nil, errors.New("db down")
			},
		}
		m := New(store, config.ResolverConfig{}, lgr.NoOp)
		assert.Nil(t, m.Resolve(context.Background(), "what is luna?"))
	})
}

func TestMatcher_EmptyQuestion(t *testing.T) {
	store := &mocks.StoreMock{}
	m := New(store, config.ResolverConfig{}, nil)
	assert.Nil(t, m.Resolve(context.Background(), "   "))
	assert.Empty(t, store.FindActiveByQuestionCalls())
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"what", "luna", "chatbot"}, Keywords("What is LUNA the chatbot luna", 4))
	assert.Equal(t, []string{"apakah", "jadwal"}, Keywords("apakah ada jadwal", 4))
	assert.Equal(t, []string{"ñandú"}, Keywords("ñandú año", 4), "length counted in runes")
	assert.Empty(t, Keywords("a bb ccc", 4))
}

func TestCoverageScore(t *testing.T) {
	assert.InDelta(t, 1.0, CoverageScore([]string{"luna"}, "LUNA"), 0.0001)
	assert.InDelta(t, 8.0/9.0, CoverageScore([]string{"luna"}, "luna luna"), 0.0001)
	assert.InDelta(t, 0.0, CoverageScore([]string{"mars"}, "luna"), 0.0001)
	assert.InDelta(t, 0.0, CoverageScore([]string{"luna"}, ""), 0.0001)
	// overlapping keywords don't count twice
	assert.InDelta(t, 1.0, CoverageScore([]string{"abcd", "bcde"}, "abcde"), 0.0001)
}

func TestSubstringScore(t *testing.T) {
	assert.InDelta(t, 2.0, SubstringScore(" Luna ", "luna and LUNA"), 0.0001)
	assert.InDelta(t, 0.0, SubstringScore("mars", "luna"), 0.0001)
	assert.InDelta(t, 0.0, SubstringScore(" ", "luna"), 0.0001)
}
