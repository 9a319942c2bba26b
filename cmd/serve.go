package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fitdiary/backend/config"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/routes"
	"github.com/fitdiary/backend/utils"
)

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "run schema migrations before serving")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := config.NewLogger(cfg)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	cycleStart, err := cfg.CycleStart()
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if migrate {
		if err := config.AutoMigrate(db); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	rdb := config.NewRedis(cfg)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis ping failed, email verification unavailable")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.WithError(err).Warn("redis close")
		}
	}()

	awsCfg, err := config.LoadAWS(ctx, cfg)
	if err != nil {
		return err
	}

	router, err := routes.SetupRouter(routes.Dependencies{
		Store:           repositories.NewGormStore(db),
		Codec:           utils.NewTokenCodec([]byte(cfg.JWTSecret), cfg.JWTTTL),
		Logger:          log,
		Location:        loc,
		CycleStart:      cycleStart,
		Redis:           rdb,
		Avatars:         config.NewAvatarStore(awsCfg, cfg),
		Mailer:          config.NewMailer(awsCfg, cfg),
		VerificationTTL: cfg.VerificationTTL,
		LoginRateLimit:  cfg.LoginRateLimit,
		Production:      cfg.IsProduction(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.AppAddr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.AppShutdownTimeout)
		defer cancel()
		log.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
