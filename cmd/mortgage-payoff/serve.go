package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/mortgage-payoff/internal/cache"
	"github.com/iwvelando/mortgage-payoff/internal/logging"
	"github.com/iwvelando/mortgage-payoff/internal/payoff"
	"github.com/iwvelando/mortgage-payoff/internal/server"
	"github.com/iwvelando/mortgage-payoff/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	configLocation string
	address        string
	maxUploadSize  string
	logLevel       string
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the payoff calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configLocation, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flags.StringVar(&opts.address, "address", "", "listen address override")
	flags.StringVar(&opts.maxUploadSize, "max-upload-size", "", "maximum upload size override, e.g. 512K or 1M")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := server.LoadConfig(opts.configLocation)
	if err != nil {
		return err
	}
	if opts.address != "" {
		cfg.Address = opts.address
	}
	if opts.maxUploadSize != "" {
		size, err := server.ParseSize(opts.maxUploadSize)
		if err != nil {
			return err
		}
		cfg.SetUploadSizeBytes(size)
	}

	logger, err := logging.New(cfg.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	resultCache, closeCache := newResultCache(ctx, logger, cfg.Cache)
	defer closeCache()

	handler := server.NewHandler(logger, payoff.NewService(logger, resultCache), cfg.UploadSizeBytes(), version)
	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			zap.String("op", "main.runServe"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
		logger.Info("shutting down server", zap.String("op", "main.runServe"))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}
	logger.Info("server exited", zap.String("op", "main.runServe"))
	return nil
}

// newResultCache prefers Redis when configured and reachable, falling back
// to an in-process cache.
func newResultCache(ctx context.Context, logger *zap.Logger, cfg server.CacheConfig) (cache.Cache, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(cfg.TTLDuration()), func() {}
	}

	redisCache := cache.NewRedis(cfg.RedisAddr, cfg.TTLDuration())
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := redisCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, using in-memory result cache",
			zap.String("op", "main.newResultCache"),
			zap.String("redisAddr", cfg.RedisAddr),
			zap.Error(err),
		)
		_ = redisCache.Close()
		return cache.NewMemory(cfg.TTLDuration()), func() {}
	}

	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			logger.Warn("failed to close redis client",
				zap.String("op", "main.newResultCache"),
				zap.Error(err),
			)
		}
	}
}
