package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/airflow-logconf/internal/api"
	"github.com/eugenenazirov/airflow-logconf/internal/config"
	"github.com/eugenenazirov/airflow-logconf/internal/logconf"
	"github.com/eugenenazirov/airflow-logconf/internal/store"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store   *store.Store
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided
// configuration. The shipping triplets are re-read from the environment on
// every resolution, so both a refresh and the settings endpoint observe env
// var changes made after startup, and they never disagree with each other.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	resolveSettings := func() logconf.Settings {
		shipping := cfg.Shipping
		shipping.Sources = config.SourcesFromEnv()
		return shipping
	}
	build := func() (*logconf.Config, error) {
		return logconf.Build(resolveSettings())
	}

	st, err := store.New(build)
	if err != nil {
		return nil, fmt.Errorf("failed to build initial logging configuration: %w", err)
	}

	handler := api.NewHandler(st, resolveSettings)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		store:   st,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(cfg, router),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Store returns the configuration store, primarily for tests.
func (a *App) Store() *store.Store {
	return a.store
}
