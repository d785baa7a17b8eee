// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artpar/actiongate/adapters/clock"
	apihttp "github.com/artpar/actiongate/adapters/http"
	"github.com/artpar/actiongate/adapters/idgen"
	"github.com/artpar/actiongate/adapters/memory"
	"github.com/artpar/actiongate/adapters/metrics"
	"github.com/artpar/actiongate/adapters/sqlite"
	"github.com/artpar/actiongate/app"
	"github.com/artpar/actiongate/config"
	"github.com/artpar/actiongate/core/schema"
	"github.com/artpar/actiongate/ports"
	"github.com/rs/zerolog"
)

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Config
	Holder     *schema.Holder
	DB         *sqlite.DB
	HTTPServer *http.Server
	Metrics    *metrics.Collector

	// Services and adapters held for shutdown
	validationService *app.ValidationService
	decisionStore     ports.DecisionStore
	decisionRecorder  ports.DecisionRecorder
}

// New creates and initializes the application from the given config file.
// If the file does not exist, configuration falls back to ACTIONGATE_*
// environment variables.
func New(configPath string) (*App, error) {
	cfg, err := config.LoadWithFallback(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	logger.Info().Msg("initializing actiongate")

	a := &App{
		Logger: logger,
		Config: cfg,
	}

	if err := a.initSchema(); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	// Initialize metrics if enabled
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		logger.Info().Msg("prometheus metrics enabled")
	}

	if err := a.initDecisionJournal(); err != nil {
		return nil, fmt.Errorf("init decision journal: %w", err)
	}

	a.initValidationService()

	// Start watching the schema file only after the validation service has
	// registered its swap callback, so no reload is delivered into the void.
	if cfg.Schema.Watch {
		if err := a.Holder.WatchFile(); err != nil {
			logger.Warn().Err(err).Msg("schema file watch unavailable")
		}
	}
	a.Holder.WatchSignals()

	if err := a.initHTTPServer(); err != nil {
		return nil, fmt.Errorf("init http server: %w", err)
	}

	return a, nil
}

func (a *App) initSchema() error {
	holder, err := schema.NewHolder(a.Config.Schema.Path, a.Logger)
	if err != nil {
		return err
	}
	a.Holder = holder

	svc := holder.Get()
	a.Logger.Info().
		Str("service", svc.Name).
		Int("actions", len(svc.Actions)).
		Str("path", holder.Path()).
		Msg("schema loaded")
	return nil
}

func (a *App) initDecisionJournal() error {
	if !a.Config.Decisions.Enabled {
		a.Logger.Info().Msg("decision journal disabled")
		return nil
	}

	switch a.Config.Database.Driver {
	case "memory":
		a.decisionStore = memory.NewDecisionStore()
	default:
		db, err := sqlite.Open(a.Config.Database.DSN)
		if err != nil {
			return err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("migrate: %w", err)
		}
		a.DB = db
		a.decisionStore = sqlite.NewDecisionStore(db)
		a.Logger.Info().Str("dsn", a.Config.Database.DSN).Msg("database initialized")
	}

	a.decisionRecorder = NewLocalDecisionRecorderWithMetrics(
		a.decisionStore,
		a.Config.Decisions.BatchSize,
		a.Config.Decisions.FlushInterval,
		a.Metrics,
	)
	a.Logger.Info().
		Str("driver", a.Config.Database.Driver).
		Int("batch_size", a.Config.Decisions.BatchSize).
		Dur("flush_interval", a.Config.Decisions.FlushInterval).
		Msg("decision journal enabled")
	return nil
}

func (a *App) initValidationService() {
	a.validationService = app.NewValidationService(app.ValidationDeps{
		IDs:      idgen.UUID{},
		Clock:    clock.Real{},
		Recorder: a.decisionRecorder,
		Logger:   a.Logger,
	}, a.Holder.Get())

	a.Holder.OnSwap(func(svc schema.Service) {
		a.validationService.UpdateSchema(svc)
		if a.Metrics != nil {
			a.Metrics.SchemaReloads.Inc()
			a.Metrics.SchemaLastReload.SetToCurrentTime()
			a.Metrics.SchemaActions.Set(float64(len(svc.Actions)))
		}
	})

	if a.Metrics != nil {
		a.Metrics.SchemaActions.Set(float64(len(a.Holder.Get().Actions)))
	}
}

func (a *App) initHTTPServer() error {
	var handler *apihttp.ValidateHandler
	if a.Metrics != nil {
		handler = apihttp.NewValidateHandlerWithMetrics(a.validationService, a.Logger, a.Metrics)
	} else {
		handler = apihttp.NewValidateHandler(a.validationService, a.Logger)
	}
	if a.decisionStore != nil {
		handler.SetDecisionStore(a.decisionStore)
	}

	// Readiness tracks the journal database when one is open.
	var checker apihttp.HealthChecker
	if a.DB != nil {
		checker = a.DB
	}
	healthHandler := apihttp.NewHealthHandler(checker)

	router := apihttp.NewRouterWithConfig(handler, healthHandler, a.Logger, apihttp.RouterConfig{
		Metrics:       a.Metrics,
		EnableOpenAPI: a.Config.OpenAPI.Enabled,
	})

	addr := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)
	a.HTTPServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	a.Logger.Info().Str("addr", addr).Msg("http server configured")
	return nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives
// or the server fails.
func (a *App) Run() error {
	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	// Stop schema watchers
	if a.Holder != nil {
		a.Holder.Stop()
	}

	// Flush decision recorder
	if a.decisionRecorder != nil {
		if err := a.decisionRecorder.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("decision recorder close error")
		}
	}

	// Close database
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

// Reload re-reads the schema file and swaps it in if it parses.
func (a *App) Reload() error {
	return a.Holder.Reload()
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
