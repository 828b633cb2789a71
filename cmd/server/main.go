package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/ussd-push-service/internal/adapters/secrets"
	"github.com/kevin07696/ussd-push-service/internal/adapters/soaphttp"
	"github.com/kevin07696/ussd-push-service/internal/adapters/ussdpush"
	"github.com/kevin07696/ussd-push-service/internal/config"
	pkghttp "github.com/kevin07696/ussd-push-service/pkg/http"
	"github.com/kevin07696/ussd-push-service/pkg/middleware"
	"github.com/kevin07696/ussd-push-service/pkg/observability"
	"github.com/kevin07696/ussd-push-service/pkg/shutdown"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A missing .env is normal outside local development
	envErr := godotenv.Load()

	cfg := config.LoadFromEnv()

	logger, err := initLogger(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("Failed to load .env file", zap.Error(envErr))
	}

	logger.Info("Starting USSD push service",
		zap.String("secrets_backend", cfg.Secrets.Backend),
		zap.Int("http_port", cfg.Server.HTTPPort),
		zap.Int("metrics_port", cfg.Server.MetricsPort),
	)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Service stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	gatewayCfg, err := loadGatewayConfig(ctx, cfg, logger)
	if err != nil {
		return err
	}

	transport := soaphttp.NewTransport(pkghttp.GatewayClientConfig(), cfg.Server.GatewayTimeout, logger)
	gateway := ussdpush.NewAdapter(transport, logger)

	rateLimiter := middleware.NewRateLimiter(cfg.Server.WebhookRateLimit, cfg.Server.WebhookRateBurst, logger)
	inFlight := shutdown.NewInFlightTracker("gateway-requests", logger)

	apiServer := &http.Server{
		Addr: ":" + strconv.Itoa(cfg.Server.HTTPPort),
		Handler: newRouter(routerDeps{
			gateway:     gateway,
			cfg:         gatewayCfg,
			rateLimiter: rateLimiter,
			inFlight:    inFlight,
			logger:      logger,
			development: cfg.Logger.Development,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		// A charge is a login plus a request round trip
		WriteTimeout: 2*cfg.Server.GatewayTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	healthChecker := observability.NewHealthChecker()
	healthChecker.Register("gateway_config", gatewayConfigCheck(gatewayCfg))
	healthChecker.Register("tls_material", tlsMaterialCheck(gatewayCfg.TLS))
	metricsServer := observability.StartMetricsServer(strconv.Itoa(cfg.Server.MetricsPort), healthChecker, logger)

	// Reverse order: stop accepting requests, drain gateway calls, then stop helpers
	manager := shutdown.NewManager(logger, shutdownTimeout)
	manager.RegisterNoErr("rate-limiter", rateLimiter.Shutdown)
	manager.RegisterHTTPServer("metrics-server", metricsServer)
	manager.Register("gateway-requests", inFlight.Shutdown)
	manager.RegisterHTTPServer("api-server", apiServer)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API server listening", zap.String("address", apiServer.Addr))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := <-serverErr; err != nil {
			logger.Error("API server failed", zap.Error(err))
			cancel()
		}
	}()

	return manager.WaitForSignal(waitCtx)
}

// loadGatewayConfig resolves gateway settings from the secret store with env fallback
func loadGatewayConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (config.GatewayConfig, error) {
	store, err := secrets.NewStore(ctx, cfg.Secrets, logger)
	if err != nil {
		return config.GatewayConfig{}, fmt.Errorf("failed to initialize secret store: %w", err)
	}
	// Credentials are read once at startup
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	provider, err := secrets.GatewayProvider(ctx, store, cfg.Secrets.Path)
	if err != nil {
		return config.GatewayConfig{}, fmt.Errorf("failed to load gateway secrets: %w", err)
	}

	gatewayCfg := config.LoadGatewayConfig(provider)
	logger.Info("Gateway configuration loaded",
		zap.String("login_url", gatewayCfg.LoginURL),
		zap.String("request_url", gatewayCfg.RequestURL),
		zap.String("mode", gatewayCfg.Client.Mode),
		zap.Bool("mutual_tls", gatewayCfg.TLS.CertPath != ""),
	)
	return gatewayCfg, nil
}

func initLogger(cfg config.LoggerConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func gatewayConfigCheck(cfg config.GatewayConfig) observability.CheckFunc {
	return func(ctx context.Context) error {
		switch {
		case cfg.LoginURL == "":
			return errors.New("login URL is not configured")
		case cfg.RequestURL == "":
			return errors.New("request URL is not configured")
		case cfg.Username == "" || cfg.Password == "":
			return errors.New("gateway credentials are not configured")
		}
		return nil
	}
}

// tlsMaterialCheck reports configured TLS files that cannot be read
// The adapter degrades to no client certificate, which the gateway will reject
func tlsMaterialCheck(cfg config.TLSConfig) observability.CheckFunc {
	return func(ctx context.Context) error {
		for _, path := range []string{cfg.CAPath, cfg.CertPath, cfg.KeyPath} {
			if path == "" {
				continue
			}
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("tls file %s: %w", path, err)
			}
		}
		return nil
	}
}
