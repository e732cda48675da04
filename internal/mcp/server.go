package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return "local"
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("workout-tracker", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Workout tracker data server. Browse the exercise catalog and query completed workouts and training statistics. All workout data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExercise, Handler: h.getExercise},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolGetWorkoutStats, Handler: h.getWorkoutStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"workout://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("Workouts completed in the last 14 days"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"workout://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All active exercises with difficulty ratings and descriptions"),
	mcp.WithMIMEType("application/json"),
)
