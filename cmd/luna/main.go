package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/luna/pkg/config"
	"github.com/umputun/luna/pkg/interaction"
	"github.com/umputun/luna/pkg/llm"
	"github.com/umputun/luna/pkg/matcher"
	"github.com/umputun/luna/pkg/repository"
	"github.com/umputun/luna/pkg/resolver"
	"github.com/umputun/luna/pkg/scheduler"
	"github.com/umputun/luna/pkg/settings"
	"github.com/umputun/luna/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is cancelled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if cfg.Server.APIToken != "" {
		SetupLog(opts.Debug, cfg.Server.APIToken)
	}

	lgr.Printf("[INFO] starting luna version %s", revision)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	if err := seedSettings(ctx, repos.Setting, cfg.Server.APIToken); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	stored, err := repos.Setting.GetAllSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if secrets := secretsFrom(stored, cfg.Server.APIToken); len(secrets) > 0 {
		SetupLog(opts.Debug, secrets...)
	}

	logger := lgr.Default()
	settingsProvider := settings.NewProvider(repos.Setting, cfg.Settings.CacheTTL, logger)
	recorder := interaction.NewLogger(repos.Interaction, logger)
	orchestrator := llm.NewOrchestrator(llm.NewClient(cfg.GetLLMConfig()), settingsProvider, cfg.GetLLMConfig(), logger)
	svc := resolver.New(matcher.New(repos.Knowledge, cfg.GetResolverConfig(), logger), orchestrator, recorder, logger)

	sched := scheduler.NewScheduler(scheduler.Params{
		LogStore:       repos.Interaction,
		RateLimitStore: repos.RateLimit,
		Settings:       settingsProvider,
		Logger:         logger,
		Interval:       cfg.Maintenance.Interval,
	})

	srv := server.New(server.Params{
		Config:        cfg,
		Resolver:      svc,
		Recorder:      recorder,
		Knowledge:     repos.Knowledge,
		Logs:          repos.Interaction,
		Stats:         repos.Interaction,
		Settings:      settingsProvider,
		SettingsStore: repos.Setting,
		RateLimiter:   repos.RateLimit,
		WebhookAuth:   cfg.Server.WebhookAuth,
		Version:       revision,
		Debug:         opts.Debug,
		Logger:        logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sched.Start(gctx)
		<-gctx.Done()
		sched.Stop()
		return nil
	})
	g.Go(func() error {
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// seedSettings fills missing settings with defaults. The api token comes from config,
// a random one is generated when neither config nor database has it.
func seedSettings(ctx context.Context, store *repository.SettingRepository, apiToken string) error {
	values := settings.Defaults()
	existing, err := store.GetSetting(ctx, settings.KeyAPIToken)
	if err != nil {
		return err
	}
	switch {
	case apiToken != "":
		values[settings.KeyAPIToken] = apiToken
	case existing == "":
		values[settings.KeyAPIToken] = uuid.NewString()
		lgr.Printf("[WARN] api token is not configured, generated one and stored in settings")
	}
	return store.SeedSettings(ctx, values)
}

// secretsFrom collects values to mask in logs: stored api token and openai key plus extra values.
// Empty values and the placeholder key are skipped.
func secretsFrom(stored map[string]string, extra ...string) []string {
	res := []string{}
	seen := map[string]bool{}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		res = append(res, v)
	}
	add(stored[settings.KeyAPIToken])
	if !settings.IsPlaceholderKey(stored[settings.KeyOpenAIKey]) {
		add(stored[settings.KeyOpenAIKey])
	}
	for _, v := range extra {
		add(v)
	}
	return res
}

// SetupLog configures the global logger, secrets are masked in the output
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
