package workout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	"github.com/khushal-mali/ai-workout-tracker/internal/session"
)

// ContentStore is the slice of the content client the save pipeline needs.
type ContentStore interface {
	ExerciseByID(ctx context.Context, id string) (*models.Exercise, error)
	ExerciseByName(ctx context.Context, name string) (*models.Exercise, error)
	CreateWorkout(ctx context.Context, rec models.WorkoutRecord) (string, error)
}

// saveState is the per-user in-flight guard: Idle -> Saving -> Idle is the
// only allowed cycle, and Saving -> Saving is rejected.
type saveState int

const (
	stateIdle saveState = iota
	stateSaving
)

// Saver runs the save pipeline. One save may be in flight per user.
type Saver struct {
	store ContentStore
	log   *slog.Logger

	mu     sync.Mutex
	states map[string]saveState

	now func() time.Time
}

// NewSaver creates a Saver backed by the given content store.
func NewSaver(store ContentStore, log *slog.Logger) *Saver {
	return &Saver{
		store:  store,
		log:    log,
		states: make(map[string]saveState),
		now:    time.Now,
	}
}

// Save transforms the session snapshot into a workout record and persists
// it. On success it returns the record with its new document id; the caller
// is responsible for resetting the session. On any error the session is
// untouched.
func (s *Saver) Save(ctx context.Context, userID string, snap session.Snapshot, elapsedSeconds float64) (models.WorkoutRecord, error) {
	if !s.begin(userID) {
		return models.WorkoutRecord{}, ErrSaveInProgress
	}
	defer s.end(userID)

	exercises, err := s.resolveExercises(ctx, snap.Exercises)
	if err != nil {
		return models.WorkoutRecord{}, err
	}
	if len(exercises) == 0 {
		return models.WorkoutRecord{}, ErrNoCompletedSets
	}

	rec := models.WorkoutRecord{
		UserID:    userID,
		Date:      s.now().UTC(),
		Duration:  elapsedSeconds,
		Exercises: exercises,
	}

	id, err := s.store.CreateWorkout(ctx, rec)
	if err != nil {
		s.log.Error("workout save failed", "user", userID, "error", err)
		return models.WorkoutRecord{}, fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	rec.ID = id

	s.log.Info("workout saved", "user", userID, "workout", id,
		"exercises", len(rec.Exercises), "duration_sec", elapsedSeconds)
	return rec, nil
}

// resolveExercises resolves every draft against the catalog and commits its
// sets. Exercises whose committed set list is empty are dropped; a failed
// catalog resolution aborts the whole save.
func (s *Saver) resolveExercises(ctx context.Context, drafts []models.ExerciseDraft) ([]models.RecordExercise, error) {
	var out []models.RecordExercise
	for _, draft := range drafts {
		sets := draft.CommittedSets()
		if len(sets) == 0 {
			continue
		}

		doc, err := s.resolve(ctx, draft)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, fmt.Errorf("%q: %w", draft.Name, ErrExerciseNotFound)
		}

		out = append(out, models.RecordExercise{
			ExerciseID:   doc.ID,
			ExerciseName: doc.Name,
			Sets:         sets,
		})
	}
	return out, nil
}

// resolve prefers the catalog id captured at add time; the name lookup
// remains as a fallback for drafts that predate id capture. Resolving by id
// keeps saves working across catalog renames.
func (s *Saver) resolve(ctx context.Context, draft models.ExerciseDraft) (*models.Exercise, error) {
	if draft.CatalogID != "" {
		doc, err := s.store.ExerciseByID(ctx, draft.CatalogID)
		if err != nil {
			return nil, fmt.Errorf("resolving exercise %q: %w", draft.Name, err)
		}
		return doc, nil
	}

	doc, err := s.store.ExerciseByName(ctx, draft.Name)
	if err != nil {
		return nil, fmt.Errorf("resolving exercise %q: %w", draft.Name, err)
	}
	return doc, nil
}

// begin attempts the Idle -> Saving transition.
func (s *Saver) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[userID] == stateSaving {
		return false
	}
	s.states[userID] = stateSaving
	return true
}

func (s *Saver) end(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = stateIdle
}
