package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/turing/internal/logging"
	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP server",
	Long: `Exposes simulation over a JSON API: POST /simulate and POST /graph take a machine
description in the request body. Prometheus metrics are served on /metrics.

Simulation results can be cached in memory (--cache-size) or in Redis (--redis-addr).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		debug, _ := cmd.Flags().GetBool("debug")

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		opts := []httpAdapter.Option{
			httpAdapter.WithLogger(logger),
			httpAdapter.WithRegistry(prometheus.NewRegistry()),
		}
		if limit, _ := cmd.Flags().GetInt("max-steps-limit"); limit > 0 {
			opts = append(opts, httpAdapter.WithMaxStepsLimit(limit))
		}

		redisAddr, _ := cmd.Flags().GetString("redis-addr")
		cacheSize, _ := cmd.Flags().GetInt("cache-size")
		cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")
		switch {
		case redisAddr != "":
			cache := redis.New(redisAddr, os.Getenv("TURING_REDIS_PASSWORD"), 0, redis.WithTTL(cacheTTL))
			defer cache.Close()
			if err := cache.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
			}
			logger.Info("caching results in redis", "addr", redisAddr, "ttl", cacheTTL)
			opts = append(opts, httpAdapter.WithCache(cache))
		case cacheSize > 0:
			logger.Info("caching results in memory", "size", cacheSize)
			opts = append(opts, httpAdapter.WithCache(memory.NewCache(cacheSize)))
		}

		handler := httpAdapter.NewHandler(opts...)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("starting server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("shutting down")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("graceful shutdown did not complete", "error", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Int("max-steps-limit", httpAdapter.DefaultMaxStepsLimit, "Largest step budget a request may ask for")
	serveCmd.Flags().Int("cache-size", 0, "Cache up to this many simulation results in memory (0 disables)")
	serveCmd.Flags().String("redis-addr", "", "Cache simulation results in Redis at this address (password from TURING_REDIS_PASSWORD)")
	serveCmd.Flags().Duration("cache-ttl", time.Hour, "Expiration of results cached in Redis")
}
