package settings

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store

// Store reads raw settings
type Store interface {
	GetAllSettings(ctx context.Context) (map[string]string, error)
}

// Provider caches parsed settings for a TTL. Invalidate drops the cache after a settings write.
type Provider struct {
	store Store
	ttl   time.Duration
	log   lgr.L
	now   func() time.Time

	mu       sync.Mutex
	cached   Settings
	loadedAt time.Time
	valid    bool
}

// NewProvider makes a provider, ttl 0 disables caching
func NewProvider(store Store, ttl time.Duration, l lgr.L) *Provider {
	if l == nil {
		l = lgr.NoOp
	}
	return &Provider{store: store, ttl: ttl, log: l, now: time.Now}
}

// Get returns current settings. A store failure falls back to the last good value or to defaults,
// it never fails the caller.
func (p *Provider) Get(ctx context.Context) Settings {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.valid && p.ttl > 0 && p.now().Sub(p.loadedAt) < p.ttl {
		return p.cached
	}

	raw, err := p.store.GetAllSettings(ctx)
	if err != nil {
		p.log.Logf("[WARN] can't load settings, %v", err)
		if p.valid {
			return p.cached
		}
		s, _ := Parse(nil)
		return s
	}

	s, problems := Parse(raw)
	for _, pr := range problems {
		p.log.Logf("[WARN] settings: %s", pr)
	}
	p.cached, p.loadedAt, p.valid = s, p.now(), true
	return s
}

// Invalidate forces the next Get to reload from the store
func (p *Provider) Invalidate() {
	p.mu.Lock()
	p.valid = false
	p.mu.Unlock()
}
