package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"
	"github.com/microcosm-cc/bluemonday"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/umputun/luna/pkg/domain"
	"github.com/umputun/luna/pkg/interaction"
	"github.com/umputun/luna/pkg/repository"
	"github.com/umputun/luna/pkg/resolver"
	"github.com/umputun/luna/pkg/settings"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/resolver.go -pkg mocks -skip-ensure -fmt goimports . Resolver
//go:generate moq -out mocks/recorder.go -pkg mocks -skip-ensure -fmt goimports . Recorder
//go:generate moq -out mocks/knowledge.go -pkg mocks -skip-ensure -fmt goimports . KnowledgeStore
//go:generate moq -out mocks/stats.go -pkg mocks -skip-ensure -fmt goimports . StatsStore
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . SettingsProvider
//go:generate moq -out mocks/rate_limiter.go -pkg mocks -skip-ensure -fmt goimports . RateLimiter
//go:generate moq -out mocks/log_store.go -pkg mocks -skip-ensure -fmt goimports . LogStore
//go:generate moq -out mocks/settings_store.go -pkg mocks -skip-ensure -fmt goimports . SettingsStore

// Server represents HTTP server instance
type Server struct {
	config        ConfigProvider
	resolver      Resolver
	recorder      Recorder
	knowledge     KnowledgeStore
	logs          LogStore
	stats         StatsStore
	settings      SettingsProvider
	settingsStore SettingsStore
	rateLimiter   RateLimiter
	webhookAuth   bool
	version       string
	debug         bool
	log           lgr.L
	sanitizer     *bluemonday.Policy

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Resolver answers questions
type Resolver interface {
	Resolve(ctx context.Context, question string, meta resolver.RequestMeta) (string, error)
}

// Recorder appends interaction log entries produced outside of the webhook
type Recorder interface {
	Record(ctx context.Context, e interaction.Entry) (int64, error)
}

// KnowledgeStore manages knowledge base records and the review-to-training flow
type KnowledgeStore interface {
	CreateRecord(ctx context.Context, rec *domain.QARecord) error
	GetRecord(ctx context.Context, id int64) (*domain.QARecord, error)
	UpdateRecord(ctx context.Context, rec *domain.QARecord) error
	DeleteRecord(ctx context.Context, id int64) error
	ListRecords(ctx context.Context, status domain.QAStatus, limit, offset int) ([]domain.QARecord, error)
	GetTrainedRecords(ctx context.Context) ([]domain.QARecord, error)
	TrainFromLog(ctx context.Context, logID int64, rec *domain.QARecord) (int64, error)
}

// LogStore reads the interaction log for review
type LogStore interface {
	ListEntries(ctx context.Context, filter repository.LogFilter) ([]domain.InteractionLogEntry, error)
	GetEntry(ctx context.Context, id int64) (*domain.InteractionLogEntry, error)
}

// SettingsStore writes runtime settings
type SettingsStore interface {
	SetSetting(ctx context.Context, key, value string) error
}

// StatsStore reports interaction counts
type StatsStore interface {
	CountBySource(ctx context.Context) (map[domain.Source]int64, error)
}

// SettingsProvider returns cached runtime settings
type SettingsProvider interface {
	Get(ctx context.Context) settings.Settings
	Invalidate()
}

// RateLimiter counts requests per client ip in fixed windows
type RateLimiter interface {
	Hit(ctx context.Context, ip string, window time.Duration, now time.Time) (int, error)
}

// Params groups server dependencies
type Params struct {
	Config        ConfigProvider
	Resolver      Resolver
	Recorder      Recorder
	Knowledge     KnowledgeStore
	Logs          LogStore
	Stats         StatsStore
	Settings      SettingsProvider
	SettingsStore SettingsStore
	RateLimiter   RateLimiter
	WebhookAuth   bool // require bearer token on webhook POST
	Version       string
	Debug         bool
	Logger        lgr.L
}

// New initializes a new server instance
func New(p Params) *Server {
	if p.Logger == nil {
		p.Logger = lgr.Default()
	}
	s := &Server{
		config:        p.Config,
		resolver:      p.Resolver,
		recorder:      p.Recorder,
		knowledge:     p.Knowledge,
		logs:          p.Logs,
		stats:         p.Stats,
		settings:      p.Settings,
		settingsStore: p.SettingsStore,
		rateLimiter:   p.RateLimiter,
		webhookAuth:   p.WebhookAuth,
		version:       p.Version,
		debug:         p.Debug,
		log:           p.Logger,
		sanitizer:     bluemonday.StrictPolicy(),
		router:        routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	s.log.Logf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		// answers may wait for several completion attempts
		WriteTimeout: 0,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		s.log.Logf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.log.Logf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("luna", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(s.log), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(s.log))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		// chat front-end webhook, all methods, challenge handshake comes first
		r.HandleFunc("/webhook", s.webhookHandler)

		r.Group().Route(func(p *routegroup.Bundle) {
			p.Use(s.bearerAuth)
			p.HandleFunc("POST /log-response", s.logResponseHandler)
			p.HandleFunc("GET /trained", s.trainedHandler)
			p.HandleFunc("POST /train", s.trainHandler)
			p.HandleFunc("GET /stats", s.statsHandler)
			p.HandleFunc("POST /settings/invalidate", s.invalidateSettingsHandler)
			p.HandleFunc("PUT /settings/{key}", s.setSettingHandler)

			// review queue and history
			p.HandleFunc("GET /logs", s.listLogsHandler)
			p.HandleFunc("GET /logs/{id}", s.getLogHandler)

			// knowledge base curation
			p.HandleFunc("GET /knowledge", s.listKnowledgeHandler)
			p.HandleFunc("POST /knowledge", s.createKnowledgeHandler)
			p.HandleFunc("GET /knowledge/{id}", s.getKnowledgeHandler)
			p.HandleFunc("PUT /knowledge/{id}", s.updateKnowledgeHandler)
			p.HandleFunc("DELETE /knowledge/{id}", s.deleteKnowledgeHandler)
		})
	})

	s.router.Handle("GET /metrics", promhttp.Handler())
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
