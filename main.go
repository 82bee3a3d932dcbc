package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"remindchat/internal/api"
	"remindchat/internal/calendar"
	"remindchat/internal/config"
	"remindchat/internal/database"
	"remindchat/internal/extractor"
	"remindchat/internal/notify"
	"remindchat/internal/scheduler"
	"remindchat/internal/session"
	"remindchat/internal/store"
	"remindchat/internal/workflow"
)

const statusCacheTTL = 5 * time.Minute

func main() {
	logger := log.New(os.Stdout, "[remindchat] ", log.LstdFlags|log.Lshortfile)
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET_KEY is not set")
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("database init failed: %v", err)
	}

	st := store.New(db)
	sessions := session.NewManager(cfg.JWTSecret)
	tokens := session.NewTokenCache()
	status := calendar.NewStatusCache(statusCacheTTL)
	cal := calendar.New(cfg.CalendarEndpoint, cfg.EventDurationMinutes, cfg.LocalTimezone, logger)
	ex := extractor.New(cfg.OpenAIAPIKey)
	notifier := notify.New(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)

	flow := workflow.New(st, cal, ex, status, tokens, cfg, logger)

	jobs := scheduler.New(cfg, st, flow, notifier, logger)
	if err := jobs.Start(); err != nil {
		logger.Fatalf("scheduler start: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.New(flow, sessions, tokens, logger).Router(),
	}

	go func() {
		logger.Printf("server starting on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	waitForShutdown(server, jobs, logger)
}

func waitForShutdown(server *http.Server, jobs *scheduler.Scheduler, logger *log.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Printf("server shutdown error: %v", err)
	}
	jobs.Stop()
}
