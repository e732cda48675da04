package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
)

// Wire shapes mirror the store's document schema. Exercises carry a
// difficulty enum and media references; workouts nest exercise references
// and set arrays.

type exerciseDoc struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	ImageURL    string `json:"imageUrl"`
	VideoURL    string `json:"videoUrl"`
	IsActive    bool   `json:"isActive"`
}

type workoutDoc struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Date      time.Time `json:"date"`
	Duration  float64   `json:"duration"`
	Exercises []struct {
		Exercise struct {
			ID   string `json:"_id"`
			Name string `json:"name"`
		} `json:"exercise"`
		Sets []struct {
			Reps       int     `json:"reps"`
			Weight     float64 `json:"weight"`
			WeightUnit string  `json:"weightUnit"`
		} `json:"sets"`
	} `json:"exercises"`
}

func (d exerciseDoc) toModel() models.Exercise {
	return models.Exercise{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Difficulty:  models.Difficulty(d.Difficulty),
		ImageURL:    d.ImageURL,
		VideoURL:    d.VideoURL,
		IsActive:    d.IsActive,
	}
}

func (d workoutDoc) toModel() models.WorkoutRecord {
	rec := models.WorkoutRecord{
		ID:       d.ID,
		UserID:   d.UserID,
		Date:     d.Date,
		Duration: d.Duration,
	}
	for _, ex := range d.Exercises {
		entry := models.RecordExercise{
			ExerciseID:   ex.Exercise.ID,
			ExerciseName: ex.Exercise.Name,
		}
		for _, s := range ex.Sets {
			entry.Sets = append(entry.Sets, models.RecordSet{
				Reps:       s.Reps,
				Weight:     s.Weight,
				WeightUnit: models.WeightUnit(s.WeightUnit),
			})
		}
		rec.Exercises = append(rec.Exercises, entry)
	}
	return rec
}

const exerciseFields = `{_id, name, description, difficulty, "imageUrl": image.asset->url, "videoUrl": videoUrl, isActive}`

const workoutFields = `{_id, userId, date, duration, exercises[]{exercise->{_id, name}, sets[]{reps, weight, weightUnit}}}`

// Exercises returns all active catalog exercises in catalog order.
func (c *Client) Exercises(ctx context.Context) ([]models.Exercise, error) {
	raw, err := c.query(ctx, `*[_type == "exercise" && isActive == true] | order(name asc) `+exerciseFields, nil)
	if err != nil {
		return nil, err
	}

	var docs []exerciseDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decoding exercises: %w", err)
	}

	out := make([]models.Exercise, len(docs))
	for i, d := range docs {
		out[i] = d.toModel()
	}
	return out, nil
}

// ExerciseByID returns a single catalog exercise, or nil when absent.
func (c *Client) ExerciseByID(ctx context.Context, id string) (*models.Exercise, error) {
	raw, err := c.query(ctx, `*[_type == "exercise" && _id == $id][0] `+exerciseFields,
		map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	return decodeOptionalExercise(raw)
}

// ExerciseByName returns the catalog exercise with an exact name match, or
// nil when absent. Kept as the fallback resolution path for session
// exercises added before catalog ids were captured.
func (c *Client) ExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	raw, err := c.query(ctx, `*[_type == "exercise" && name == $name][0] `+exerciseFields,
		map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	return decodeOptionalExercise(raw)
}

func decodeOptionalExercise(raw json.RawMessage) (*models.Exercise, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var doc exerciseDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding exercise: %w", err)
	}
	ex := doc.toModel()
	return &ex, nil
}

// WorkoutsForUser returns the user's persisted workouts, newest first, with
// exercise references resolved to {id, name}.
func (c *Client) WorkoutsForUser(ctx context.Context, userID string) ([]models.WorkoutRecord, error) {
	raw, err := c.query(ctx, `*[_type == "workout" && userId == $userId] | order(date desc) `+workoutFields,
		map[string]any{"userId": userID})
	if err != nil {
		return nil, err
	}

	var docs []workoutDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("decoding workouts: %w", err)
	}

	out := make([]models.WorkoutRecord, len(docs))
	for i, d := range docs {
		out[i] = d.toModel()
	}
	return out, nil
}

// WorkoutByID returns a single persisted workout, or nil when absent.
func (c *Client) WorkoutByID(ctx context.Context, id string) (*models.WorkoutRecord, error) {
	raw, err := c.query(ctx, `*[_type == "workout" && _id == $id][0] `+workoutFields,
		map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var doc workoutDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding workout: %w", err)
	}
	rec := doc.toModel()
	return &rec, nil
}

// CreateWorkout appends one workout document and returns its id. Exactly
// one mutation call is issued; a non-2xx response is a hard failure with no
// retry.
func (c *Client) CreateWorkout(ctx context.Context, rec models.WorkoutRecord) (string, error) {
	exercises := make([]map[string]any, 0, len(rec.Exercises))
	for _, ex := range rec.Exercises {
		sets := make([]map[string]any, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			sets = append(sets, map[string]any{
				"_type":      "set",
				"_key":       uuid.NewString(),
				"reps":       s.Reps,
				"weight":     s.Weight,
				"weightUnit": string(s.WeightUnit),
			})
		}
		exercises = append(exercises, map[string]any{
			"_type":    "workoutExercise",
			"_key":     uuid.NewString(),
			"exercise": map[string]any{"_type": "reference", "_ref": ex.ExerciseID},
			"sets":     sets,
		})
	}

	doc := map[string]any{
		"_type":     "workout",
		"userId":    rec.UserID,
		"date":      rec.Date.UTC().Format(time.RFC3339),
		"duration":  rec.Duration,
		"exercises": exercises,
	}

	ids, err := c.mutate(ctx, []map[string]any{{"create": doc}})
	if err != nil {
		return "", fmt.Errorf("creating workout: %w", err)
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

// DeleteWorkout removes a persisted workout document.
func (c *Client) DeleteWorkout(ctx context.Context, id string) error {
	_, err := c.mutate(ctx, []map[string]any{{"delete": map[string]any{"id": id}}})
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	return nil
}
