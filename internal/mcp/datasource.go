package mcp

import (
	"context"

	"github.com/khushal-mali/ai-workout-tracker/internal/content"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
)

// DataSource abstracts the data layer for MCP tools. Both *content.Client
// (direct document-store access) and HTTPClient (remote via REST API)
// satisfy this interface.
type DataSource interface {
	Exercises(ctx context.Context) ([]models.Exercise, error)
	ExerciseByID(ctx context.Context, id string) (*models.Exercise, error)
	WorkoutsForUser(ctx context.Context, userID string) ([]models.WorkoutRecord, error)
	WorkoutByID(ctx context.Context, id string) (*models.WorkoutRecord, error)
}

// Compile-time check: *content.Client satisfies DataSource.
var _ DataSource = (*content.Client)(nil)
