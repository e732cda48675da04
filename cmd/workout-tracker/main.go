package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khushal-mali/ai-workout-tracker/internal/config"
	"github.com/khushal-mali/ai-workout-tracker/internal/content"
	"github.com/khushal-mali/ai-workout-tracker/internal/guidance"
	"github.com/khushal-mali/ai-workout-tracker/internal/server"
	"github.com/khushal-mali/ai-workout-tracker/internal/session"
	"github.com/khushal-mali/ai-workout-tracker/internal/workout"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("workout tracker starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Local durable state: per-user weight unit preferences.
	prefs, err := session.OpenPrefsDB(cfg.State.Dir)
	if err != nil {
		log.Error("failed to open preferences database", "error", err)
		os.Exit(1)
	}
	defer prefs.Close()
	log.Info("preferences database ready", "dir", cfg.State.Dir)

	contentClient := content.NewClient(cfg.Content.APIURL, cfg.Content.Dataset, cfg.Content.Token)
	guidanceClient := guidance.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)

	sessions := session.NewManager(prefs, log)
	saver := workout.NewSaver(contentClient, log)

	srv := server.New(contentClient, guidanceClient, sessions, saver, cfg.Auth.APIKey, log)

	// Start server, tsnet or plain HTTP.
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
