package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rsimmons/yukawa/internal/auth"
	"github.com/rsimmons/yukawa/internal/catalog"
	"github.com/rsimmons/yukawa/internal/config"
	"github.com/rsimmons/yukawa/internal/domain"
	"github.com/rsimmons/yukawa/internal/service/study"
	"github.com/rsimmons/yukawa/internal/service/study/srs"
	"github.com/rsimmons/yukawa/internal/transport/middleware"
	"github.com/rsimmons/yukawa/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, opens the retention
// store, loads the catalogs and serves HTTP until ctx is cancelled. SIGHUP
// reloads the catalogs in place.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("db_driver", cfg.Database.Driver),
		slog.Any("langs", cfg.Content.Langs),
	)

	st, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer st.close()

	registry, err := catalog.NewRegistry(logger, cfg.Content.Dir, cfg.Content.Langs)
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}

	svc, err := study.NewService(logger, st.retention, registry, st.tx, SRSParams(cfg.SRS), cfg.SRS.Verbose)
	if err != nil {
		return fmt.Errorf("create study service: %w", err)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, 10*time.Minute)
	defer limiter.Stop()

	handler := NewHandler(HandlerDeps{
		Logger:    logger,
		Study:     svc,
		Health:    rest.NewHealthHandler(st.ping, registry, BuildVersion()),
		Validator: jwtManager,
		Limiter:   limiter,
		Config:    cfg,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		for {
			select {
			case <-hup:
				reloadCatalogs(logger, registry)
			case <-gctx.Done():
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func reloadCatalogs(logger *slog.Logger, registry *catalog.Registry) {
	if err := registry.Reload(); err != nil {
		logger.Error("catalog reload failed, keeping previous catalogs", slog.String("error", err.Error()))
		return
	}
	logger.Info("catalogs reloaded")
}

// SRSParams converts the srs config section into model parameters.
func SRSParams(cfg config.SRSConfig) srs.Params {
	return srs.Params{
		MinOverdueInterval:  cfg.MinOverdueInterval,
		RelOverdueThreshold: cfg.RelOverdueThreshold,
		InitAfterSuccess:    cfg.InitAfterSuccess,
		InitAfterFailure:    cfg.InitAfterFailure,
		SuccessMultiplier:   cfg.SuccessMultiplier,
		MaxMultiplier:       cfg.MaxMultiplier,
		MinInterval:         cfg.MinInterval,
		FailureDivisor:      cfg.FailureDivisor,
		FailurePolicy:       domain.FailurePolicy(cfg.FailurePolicy),
	}
}
