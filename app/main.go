package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/forum-view/app/api"
	"github.com/lysyi3m/forum-view/app/cfg"
	"github.com/lysyi3m/forum-view/app/forum"
	"github.com/lysyi3m/forum-view/app/tasks"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appConfig == nil {
		return
	}

	setupLogger(appConfig.Debug)

	slog.Info("Starting Forum View server", "version", appConfig.Version)

	configCache := forum.NewConfigCache(appConfig.ForumsDir)

	mainForum := &forum.Config{
		Name:       forum.MainForum,
		Title:      appConfig.Title,
		AuthorsURL: appConfig.AuthorsURL,
		PostsURL:   appConfig.PostsURL,
		Settings: forum.ConfigSettings{
			Timezone:        appConfig.Timezone,
			Timeout:         appConfig.FetchTimeout,
			ConcurrentFetch: appConfig.ConcurrentFetch,
		},
	}
	if err := configCache.Register(mainForum); err != nil {
		slog.Error("Invalid main forum configuration", "error", err)
		os.Exit(1)
	}

	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load forum configurations", "dir", appConfig.ForumsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Forum configurations loaded", "count", configCache.GetConfigCount())

	registry, err := forum.BuildRegistry(configCache, forum.NewHTTPClient(), appConfig.UserAgent)
	if err != nil {
		slog.Error("Failed to build forum registry", "error", err)
		os.Exit(1)
	}

	scheduler := tasks.NewScheduler(registry, appConfig.WorkerCount)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(registry, appConfig.Locale, appConfig.Version)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appConfig.Port, "forums", registry.Count())

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Forum View server shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
