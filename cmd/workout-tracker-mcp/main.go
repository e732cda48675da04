// Command workout-tracker-mcp runs the MCP server over stdio, backed by a
// remote workout tracker instance's REST API. Point an MCP client at this
// binary to let an assistant browse the exercise catalog and workout
// history.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/khushal-mali/ai-workout-tracker/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("url", os.Getenv("WORKOUT_SERVER_URL"), "base URL of the workout tracker server")
	userID := flag.String("user", os.Getenv("WORKOUT_USER_ID"), "user id to query as (sent as X-User-ID)")
	flag.Parse()

	// Logs go to stderr; stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		log.Error("server URL is required (-url flag or WORKOUT_SERVER_URL)")
		os.Exit(1)
	}

	ds := mcp.NewHTTPClient(*serverURL, *userID)
	s := mcp.New(ds, Version, log)

	log.Info("mcp server starting", "url", *serverURL, "user", *userID)

	err := server.ServeStdio(s, server.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return mcp.WithUserID(ctx, *userID)
	}))
	if err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
