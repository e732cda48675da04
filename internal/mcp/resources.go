package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.WorkoutsForUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -14)
	recent := make([]models.WorkoutRecord, 0, len(records))
	for _, rec := range records {
		if rec.Date.After(cutoff) {
			recent = append(recent, rec)
		}
	}

	data, err := json.Marshal(recent)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) exerciseCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.Exercises(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(exercises)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
