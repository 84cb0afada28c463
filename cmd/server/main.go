package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ritik0027/SnapTube-Backend/internal/config"
	"github.com/ritik0027/SnapTube-Backend/internal/db"
	"github.com/ritik0027/SnapTube-Backend/internal/handler"
	"github.com/ritik0027/SnapTube-Backend/internal/metrics"
	"github.com/ritik0027/SnapTube-Backend/internal/middleware"
	"github.com/ritik0027/SnapTube-Backend/internal/repository"
	"github.com/ritik0027/SnapTube-Backend/internal/router"
	"github.com/ritik0027/SnapTube-Backend/internal/service"
)

var version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "snaptube",
		Short:        "SnapTube reactions and feed API",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("snaptube version {{.Version}}\n")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	var (
		inMemory bool
		seedPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := middleware.InitLogger(cfg.LogLevel, "snaptube-api", !cfg.IsProduction())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := serve(ctx, cfg, log, inMemory, seedPath); err != nil {
				log.Error().Err(err).Msg("server stopped with error")
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "keep all data in process memory instead of Postgres")
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML or JSON fixture of users, content and subscriptions to load (implies --in-memory)")

	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := middleware.InitLogger(cfg.LogLevel, "snaptube-migrate", !cfg.IsProduction())

			pool, err := db.NewPool(cmd.Context(), cfg.DatabaseURL, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(cmd.Context(), pool); err != nil {
				return err
			}
			log.Info().Msg("schema applied")
			return nil
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger, inMemory bool, seedPath string) error {
	var (
		pool      *pgxpool.Pool
		reactions service.ReactionStore
		content   service.ContentStore
	)
	if inMemory || seedPath != "" {
		mem := repository.NewMemoryStore()
		if seedPath != "" {
			seed, err := repository.LoadSeedFile(seedPath)
			if err != nil {
				return err
			}
			if err := mem.Load(seed); err != nil {
				return fmt.Errorf("load seed: %w", err)
			}
			log.Info().
				Str("path", seedPath).
				Int("users", len(seed.Users)).
				Int("videos", len(seed.Videos)).
				Msg("seed loaded")
		}
		reactions, content = mem, mem
		log.Warn().Msg("using in-memory store, data is lost on exit")
	} else {
		var err error
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
		reactions = repository.NewReactionRepo(pool)
		content = repository.NewContentRepo(pool)
	}

	rdb := db.NewRedis(ctx, cfg.RedisURL, log)
	if rdb != nil {
		defer rdb.Close()
	}

	metrics.Register(pool)

	engagementSvc := service.NewEngagementService(reactions, content, log)
	reactionSvc := service.NewReactionService(reactions, content, log)
	feedSvc := service.NewFeedService(content, reactions, engagementSvc, cfg.Feed.MaxPageSize)

	app := router.NewApp()

	router.Setup(app, &router.Handlers{
		Reaction: handler.NewReactionHandler(reactionSvc, engagementSvc),
		Feed:     handler.NewFeedHandler(feedSvc, cfg.Feed.DefaultPageSize),
		Health:   handler.NewHealthHandler(pool, rdb, version),
	}, router.Limiters{
		Reactions: middleware.NewReactionRateLimiter(cfg.RateLimit.ReactionsPerMinute, cfg.RateLimit.Window, rdb),
		Reads:     middleware.NewReadRateLimiter(cfg.RateLimit.ReadsPerMinute, cfg.RateLimit.Window, rdb),
	}, cfg.CORSOrigins)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Environment).Msg("SnapTube backend starting")
		errCh <- app.Listen(":"+cfg.Port, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
