package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs1134/ai-disruption-tracker/app/api"
	"github.com/rs1134/ai-disruption-tracker/app/cache"
	"github.com/rs1134/ai-disruption-tracker/app/cfg"
	"github.com/rs1134/ai-disruption-tracker/app/classify"
	"github.com/rs1134/ai-disruption-tracker/app/config"
	"github.com/rs1134/ai-disruption-tracker/app/database"
	"github.com/rs1134/ai-disruption-tracker/app/ingest"
	"github.com/rs1134/ai-disruption-tracker/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting AI Disruption Tracker", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBHost, appCfg.DBPort, appCfg.DBUser,
		appCfg.DBPassword, appCfg.DBName, appCfg.DBSSLMode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database ready", "migration_version", version, "dirty", dirty)

	loader := config.NewLoader(appCfg.SourcesDir)
	sources, err := loader.LoadSources()
	if err != nil {
		log.Fatalf("Failed to load sources: %v", err)
	}
	vocabulary, err := loader.LoadVocabulary()
	if err != nil {
		log.Fatalf("Failed to load vocabulary: %v", err)
	}
	slog.Info("Sources loaded",
		"subreddits", len(sources.Subreddits),
		"news_feeds", len(sources.NewsFeeds),
		"funding_feeds", len(sources.FundingFeeds))

	itemRepo := database.NewItemRepo(db)
	companyRepo := database.NewCompanyRepo(db)
	fetchLogRepo := database.NewFetchLogRepo(db)
	fundingRepo := database.NewFundingRepo(db)

	if _, err := database.SeedFundingRounds(fundingRepo); err != nil {
		log.Fatalf("Failed to seed funding rounds: %v", err)
	}

	classifier := classify.NewClassifier(vocabulary)
	resultCache := cache.NewCache()

	httpClient := &http.Client{}

	reddit := ingest.NewRedditAdapter(httpClient, classifier, sources.Subreddits, appCfg.UserAgent)
	hackerNews := ingest.NewHackerNewsAdapter(httpClient, classifier, appCfg.UserAgent, sources.HackerNewsCap)
	rss := ingest.NewRSSAdapter(httpClient, classifier, sources.NewsFeeds, appCfg.UserAgent)
	fundingAdapter := ingest.NewFundingAdapter(httpClient, sources.FundingFeeds, appCfg.UserAgent, fundingRepo)

	refresher := ingest.NewRefresher(reddit, hackerNews, rss, classifier,
		itemRepo, companyRepo, fetchLogRepo, resultCache,
		sources.SocialMaxItems, sources.NewsMaxItems)

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval_s", appCfg.RefreshInterval)
	scheduler := tasks.NewScheduler(refresher, fundingAdapter, itemRepo, companyRepo)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(itemRepo, companyRepo, fetchLogRepo, fundingRepo,
		resultCache, refresher, fundingAdapter, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
