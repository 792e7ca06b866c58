package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/VJNAVEEN2005/aic-query-service/internal/config"
	"github.com/VJNAVEEN2005/aic-query-service/internal/gateway"
	"github.com/VJNAVEEN2005/aic-query-service/internal/handler"
	"github.com/VJNAVEEN2005/aic-query-service/internal/service"
	"github.com/VJNAVEEN2005/aic-query-service/internal/session"
	pkglog "github.com/VJNAVEEN2005/aic-query-service/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "aic-query-service",
	})
	logger := pkglog.L()

	// Initialize the upstream gateway
	gw := gateway.NewHTTPGateway(cfg.Upstream, cfg.Screens)
	logger.Info().
		Str("base_url", cfg.Upstream.BaseURL).
		Dur("timeout", cfg.Upstream.Timeout).
		Int("screens", len(cfg.Screens)).
		Msg("upstream gateway configured")

	// Initialize session registry and service
	sessions := session.NewManager(cfg.Session.TTL)
	querySvc := service.NewQueryService(cfg, gw, sessions)

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(querySvc)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "sessions": sessions.Len()})
	})

	// Register routes
	httpHandler.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("aic-query-service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Run(gCtx, cfg.Session.SweepInterval)
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutting down")
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("service exited with error")
	}
	logger.Info().Msg("stopped")
}
