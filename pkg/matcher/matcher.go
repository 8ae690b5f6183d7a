// Package matcher finds curated knowledge base answers for incoming questions,
// first by exact question match, then by keyword-based approximate match.
package matcher

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/luna/pkg/config"
	"github.com/umputun/luna/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store provides read access to active knowledge base records
type Store interface {
	FindActiveByQuestion(ctx context.Context, question string) (*domain.QARecord, error)
	FindActiveByKeywords(ctx context.Context, keywords []string) ([]domain.QARecord, error)
}

// Matcher resolves questions against the knowledge base
type Matcher struct {
	store Store
	cfg   config.ResolverConfig
	log   lgr.L
}

// New makes a matcher. Zero values in cfg are replaced by defaults.
func New(store Store, cfg config.ResolverConfig, l lgr.L) *Matcher {
	if cfg.ApproxMode == "" {
		cfg.ApproxMode = config.ApproxModeKeywords
	}
	if cfg.MinScore == 0 {
		cfg.MinScore = 0.5
	}
	if cfg.MinKeywordSize <= 0 {
		cfg.MinKeywordSize = 4
	}
	if l == nil {
		l = lgr.NoOp
	}
	return &Matcher{store: store, cfg: cfg, log: l}
}

// Resolve returns the best matching active record or nil if nothing matches well enough.
// An exact match always wins over approximate ones. Store failures are logged and count as no match.
func (m *Matcher) Resolve(ctx context.Context, question string) *domain.QARecord {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil
	}

	rec, err := m.store.FindActiveByQuestion(ctx, question)
	if err != nil {
		m.log.Logf("[WARN] exact match lookup failed, %v", err)
		return nil
	}
	if rec != nil {
		m.log.Logf("[DEBUG] exact match for %q, record %d", question, rec.ID)
		return rec
	}

	keywords := Keywords(question, m.cfg.MinKeywordSize)
	if len(keywords) == 0 {
		return nil
	}

	candidates, err := m.store.FindActiveByKeywords(ctx, keywords)
	if err != nil {
		m.log.Logf("[WARN] approximate match lookup failed, %v", err)
		return nil
	}

	var best *domain.QARecord
	bestScore := 0.0
	for i := range candidates {
		score := m.score(question, keywords, candidates[i].Question)
		// candidates come ordered by id, strict comparison keeps the lowest id on ties
		if best == nil || score > bestScore {
			best, bestScore = &candidates[i], score
		}
	}

	if best == nil || bestScore <= m.cfg.MinScore {
		if best != nil {
			m.log.Logf("[DEBUG] best approximate match for %q is record %d with score %.2f, rejected", question, best.ID, bestScore)
		}
		return nil
	}
	m.log.Logf("[DEBUG] approximate match for %q, record %d, score %.2f", question, best.ID, bestScore)
	return best
}

func (m *Matcher) score(question string, keywords []string, stored string) float64 {
	if m.cfg.ApproxMode == config.ApproxModeSubstring {
		return SubstringScore(question, stored)
	}
	return CoverageScore(keywords, stored)
}

// Keywords splits text on whitespace and keeps lowercased tokens at least minSize runes long
func Keywords(text string, minSize int) []string {
	fields := strings.Fields(text)
	res := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.ToLower(f)
		if utf8.RuneCountInString(f) < minSize || seen[f] {
			continue
		}
		seen[f] = true
		res = append(res, f)
	}
	return res
}

// CoverageScore returns the fraction of stored text runes covered by case-insensitive
// occurrences of any keyword, in range [0,1]
func CoverageScore(keywords []string, stored string) float64 {
	text := []rune(strings.ToLower(stored))
	if len(text) == 0 {
		return 0
	}

	covered := make([]bool, len(text))
	for _, kw := range keywords {
		k := []rune(strings.ToLower(kw))
		if len(k) == 0 || len(k) > len(text) {
			continue
		}
		for i := 0; i+len(k) <= len(text); i++ {
			if runesEqual(text[i:i+len(k)], k) {
				for j := i; j < i+len(k); j++ {
					covered[j] = true
				}
			}
		}
	}

	n := 0
	for _, c := range covered {
		if c {
			n++
		}
	}
	return float64(n) / float64(len(text))
}

// SubstringScore counts case-insensitive occurrences of the whole question inside the stored text
func SubstringScore(question, stored string) float64 {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return 0
	}
	return float64(strings.Count(strings.ToLower(stored), q))
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
