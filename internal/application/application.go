package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/settings-registry/internal/api"
	"github.com/eugenenazirov/settings-registry/internal/config"
	"github.com/eugenenazirov/settings-registry/internal/logging"
	"github.com/eugenenazirov/settings-registry/internal/registry"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	registry *registry.Memory
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// NewRegistry builds the settings registry for cfg. The serve and dump
// commands both go through here so they observe identical values.
func NewRegistry(cfg config.Config, opts ...registry.Option) *registry.Memory {
	return registry.New(cfg.BaseURL, opts...)
}

// NewLogger builds the process logger from the registry's level and
// environment settings and the configured log file. The returned control
// must be closed after the logger is synced.
func NewLogger(cfg config.Config, reg registry.Registry) (*zap.Logger, *logging.Control, error) {
	level, _ := reg.Get(registry.KeyLogLevel)
	environment, _ := reg.Get(registry.KeyEnvironment)

	return logging.New(logging.Options{
		Level:       level,
		Environment: environment,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
}

// New initializes the application around an already built registry. When
// control is non-nil, updates to LOG_LEVEL retune the running logger.
func New(cfg config.Config, reg *registry.Memory, logger *zap.Logger, control *logging.Control) *App {
	handlerOpts := []api.HandlerOption{api.WithHandlerLogger(logger)}
	if control != nil {
		handlerOpts = append(handlerOpts, api.WithLevelSetter(control.SetLevel))
	}
	handler := api.NewHandler(reg, handlerOpts...)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		registry: reg,
		handler:  handler,
		router:   apiRouter,
		logger:   logger,
		server:   NewServer(cfg, apiRouter),
	}
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
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.Strings("settings", registry.DefaultKeys()),
		)
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

// Registry returns the settings registry served by the application.
func (a *App) Registry() *registry.Memory {
	return a.registry
}
