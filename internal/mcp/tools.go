package mcp

import (
	"context"

	"github.com/khushal-mali/ai-workout-tracker/internal/catalog"
	"github.com/khushal-mali/ai-workout-tracker/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List exercises from the catalog. Returns name, description, difficulty, and media links for each exercise."),
	mcp.WithString("query", mcp.Description("Case-insensitive name filter (substring match, e.g. 'press'). Omit to list everything.")),
)

var toolGetExercise = mcp.NewTool("get_exercise",
	mcp.WithDescription("Fetch a single exercise by its catalog document id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exercise document id")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("List the user's completed workouts, newest first. Each record includes date, duration, and per-exercise sets with reps and weight."),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Fetch a single completed workout by its document id, including a derived summary (total sets, volume, exercise names)."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout document id")),
)

var toolGetWorkoutStats = mcp.NewTool("get_workout_stats",
	mcp.WithDescription("Aggregate training statistics for the user: workout count, total and average duration, total sets, and lifted volume partitioned by weight unit."),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.Exercises(ctx)
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	filtered := catalog.FilterExercises(exercises, req.GetString("query", ""))

	result, err := mcp.NewToolResultJSON(filtered)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	ex, err := h.ds.ExerciseByID(ctx, id)
	if err != nil {
		h.log.Error("mcp get_exercise", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if ex == nil {
		return mcp.NewToolResultError("exercise not found: " + id), nil
	}

	result, err := mcp.NewToolResultJSON(ex)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.WorkoutsForUser(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	rec, err := h.ds.WorkoutByID(ctx, id)
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if rec == nil {
		return mcp.NewToolResultError("workout not found: " + id), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workout": rec,
		"summary": stats.Summarize(*rec),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.WorkoutsForUser(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_workout_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats.Aggregate(records))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
