package main

import (
	// Standard library
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	// External dependencies
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/houzhh15/callscribe/cmd/server/internal/api"
	"github.com/houzhh15/callscribe/cmd/server/internal/callbacks"
	"github.com/houzhh15/callscribe/cmd/server/internal/config"
	"github.com/houzhh15/callscribe/cmd/server/internal/domain/sessions"
	"github.com/houzhh15/callscribe/cmd/server/internal/graph"
	"github.com/houzhh15/callscribe/cmd/server/internal/middleware"
	"github.com/houzhh15/callscribe/cmd/server/internal/notify"
	"github.com/houzhh15/callscribe/cmd/server/internal/summarize"
	"github.com/houzhh15/callscribe/pkg/logger"
)

func main() {
	// Load configuration first so the logger can pick up file settings
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	logInstance, err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		WithSource:  !strings.EqualFold(cfg.Server.Env, "prod") && !strings.EqualFold(cfg.Server.Env, "production"),
		FilePath:    cfg.Log.FilePath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	appLogger := logInstance.With("component", "call-server")

	if err := config.ValidateConfig(cfg); err != nil {
		appLogger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	appLogger.Info("configuration loaded", "env", cfg.Server.Env, "port", cfg.Server.Port)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Platform clients
	tokenProvider, err := graph.NewTokenProvider(ctx, cfg.Graph)
	if err != nil {
		appLogger.Error("token provider init failed", "error", err)
		os.Exit(1)
	}
	callClient := graph.NewCallClient(cfg.Graph, tokenProvider)
	summarizer := summarize.NewClient(cfg.Language)
	dispatcher := notify.NewDispatcher(cfg.SMTP)

	// Session store, callback router and eviction
	store := sessions.NewStore()
	router := callbacks.NewRouter(store, appLogger.With("component", "callbacks"))
	reaper := sessions.NewReaper(store, cfg.Sessions.TTL, cfg.Sessions.ReapInterval, appLogger.With("component", "reaper"))
	go reaper.Run(ctx)

	callbackURL := strings.TrimRight(cfg.Server.PublicBaseURL, "/") + "/api/calling"

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Platform-facing and probe routes stay unauthenticated
	r.POST("/api/calling", api.HandleCallingWebhook(router, appLogger.With("component", "calling")))
	r.GET("/health", api.HandleHealth())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Operator routes; auth is a pass-through when no secret is configured
	authed := r.Group("", middleware.RequireAPIToken([]byte(cfg.Security.APIJWTSecret)))
	authed.POST("/join-call", api.HandleJoinCall(callClient, callbackURL))
	authed.POST("/webhook/teams", api.HandleTeamsWebhook(store, summarizer, dispatcher))
	authed.POST("/summarize", api.HandleSummarize(summarizer))
	authed.GET("/api/v1/sessions", api.HandleListSessions(store))
	authed.GET("/api/v1/sessions/:id/transcript", api.HandleGetTranscript(store))

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		appLogger.Info("server listening", "addr", srv.Addr, "callback_url", callbackURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	appLogger.Info("server stopped", "sessions", store.Len())
}
