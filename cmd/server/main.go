package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/settings-registry/internal/application"
	"github.com/eugenenazirov/settings-registry/internal/config"
	"github.com/eugenenazirov/settings-registry/internal/registry"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("settings-server", "Settings Registry - serves API keys, page URLs and environment flags")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	baseURL := kingpinApp.Flag("base-url", "Public origin used to build page URLs").String()
	logFile := kingpinApp.Flag("log-file", "Also write logs to this file, rotated by size").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	serveCmd := kingpinApp.Command("serve", "Run the HTTP settings service").Default()
	dumpCmd := kingpinApp.Command("dump", "Print the resolved settings as YAML and exit")
	showSecrets := dumpCmd.Flag("show-secrets", "Print secret values unmasked").Bool()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *baseURL != "" {
		overrides.BaseURL = baseURL
	}

	if *logFile != "" {
		overrides.LogFile = logFile
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	reg := application.NewRegistry(cfg)

	switch command {
	case dumpCmd.FullCommand():
		if err := dump(os.Stdout, reg, *showSecrets); err != nil {
			panic(fmt.Sprintf("failed to dump settings: %v", err))
		}
	case serveCmd.FullCommand():
		serve(cfg, reg)
	}
}

func serve(cfg config.Config, reg *registry.Memory) {
	logger, control, err := application.NewLogger(cfg, reg)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
		_ = control.Close()
	}()

	app := application.New(cfg, reg, logger, control)

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// dump writes the registry snapshot as YAML, masking secrets unless showSecrets is set.
func dump(w io.Writer, reg registry.Registry, showSecrets bool) error {
	settings := reg.All()
	if !showSecrets {
		settings = registry.Redact(settings)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(settings); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
