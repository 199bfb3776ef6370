package main

import (
	"context"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/respond"
	"github.com/fastygo/respond/internal/config"
	"github.com/fastygo/respond/internal/handler"
	"github.com/fastygo/respond/internal/lifecycle"
	"github.com/fastygo/respond/internal/middleware"
	"github.com/fastygo/respond/internal/router"
	"github.com/fastygo/respond/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	zapLogger := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	healthHandler := handler.NewHealthHandler(cfg.AppName)
	notesHandler := handler.NewNotesHandler(handler.NewNoteStore(), zapLogger)

	var authMiddleware middleware.Middleware
	if cfg.Auth.Secret != "" {
		authMiddleware = middleware.BearerAuth(cfg.Auth.Secret, zapLogger)
	} else {
		zapLogger.Warn("AUTH_SECRET is empty, mutating routes are unprotected")
	}

	r := router.New(router.Handlers{
		Notes:  notesHandler,
		Health: healthHandler,
	}, authMiddleware)

	chain := []middleware.Middleware{
		middleware.RequestID(),
		middleware.AccessLog(zapLogger),
		middleware.Recover(zapLogger),
		respond.Middleware(zapLogger),
	}
	if cfg.RateLimit.Enabled {
		chain = append(chain, middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	server := &fasthttp.Server{
		Handler:      middleware.Chain(r.Handler, chain...),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		healthHandler.SetReady(false)
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
