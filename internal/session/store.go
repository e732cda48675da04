// Package session holds the in-progress workout state for each user: the
// exercises and set drafts being edited, and the preferred weight unit.
// Only the weight unit is durable; an in-progress workout does not survive
// a restart.
package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
)

// SetField names a mutable field of a set draft.
type SetField string

const (
	FieldReps   SetField = "reps"
	FieldWeight SetField = "weight"
)

// Store is the single source of truth for one user's in-progress workout.
// All mutation methods are synchronous and immediately consistent; absent
// ids are no-ops, never errors. Safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	weightUnit models.WeightUnit
	exercises  []models.ExerciseDraft

	// persistUnit is called (outside the lock is not required; calls are
	// cheap) whenever the weight unit changes. May be nil in tests.
	persistUnit func(models.WeightUnit)
}

// NewStore creates a store with the given starting weight unit.
func NewStore(unit models.WeightUnit, persistUnit func(models.WeightUnit)) *Store {
	if !unit.Valid() {
		unit = models.DefaultWeightUnit
	}
	return &Store{weightUnit: unit, persistUnit: persistUnit}
}

// AddExercise appends a new exercise draft with a fresh session-local id
// and an empty set list.
func (s *Store) AddExercise(ref models.ExerciseRef) models.ExerciseDraft {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex := models.ExerciseDraft{
		ID:        uuid.NewString(),
		CatalogID: ref.CatalogID,
		Name:      ref.Name,
	}
	s.exercises = append(s.exercises, ex)
	return ex
}

// RemoveExercise deletes the exercise with the given session-local id.
func (s *Store) RemoveExercise(exerciseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ex := range s.exercises {
		if ex.ID == exerciseID {
			s.exercises = append(s.exercises[:i], s.exercises[i+1:]...)
			return
		}
	}
}

// AddSet appends an empty, incomplete set draft to the given exercise and
// returns a copy of it. The set inherits the store's current weight unit.
// ok is false when the exercise id is absent.
func (s *Store) AddSet(exerciseID string) (models.SetDraft, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex := s.find(exerciseID)
	if ex == nil {
		return models.SetDraft{}, false
	}

	set := models.SetDraft{
		ID:         uuid.NewString(),
		WeightUnit: s.weightUnit,
	}
	ex.Sets = append(ex.Sets, set)
	return set, true
}

// UpdateSetField replaces the reps or weight value verbatim. No parsing or
// validation happens here; that is deferred to the save pipeline.
func (s *Store) UpdateSetField(exerciseID, setID string, field SetField, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.findSet(exerciseID, setID)
	if set == nil {
		return
	}
	switch field {
	case FieldReps:
		set.Reps = value
	case FieldWeight:
		set.Weight = value
	}
}

// RemoveSet deletes a set draft by id.
func (s *Store) RemoveSet(exerciseID, setID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex := s.find(exerciseID)
	if ex == nil {
		return
	}
	for i, set := range ex.Sets {
		if set.ID == setID {
			ex.Sets = append(ex.Sets[:i], ex.Sets[i+1:]...)
			return
		}
	}
}

// ToggleSetCompletion flips a set's completed flag. Toggling back to
// incomplete re-enables editing in clients; the store itself never locks
// fields.
func (s *Store) ToggleSetCompletion(exerciseID, setID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if set := s.findSet(exerciseID, setID); set != nil {
		set.IsCompleted = !set.IsCompleted
	}
}

// SetWeightUnit changes the store-level default unit for future sets.
// Existing sets keep the unit they were created with. The new preference is
// persisted on every change.
func (s *Store) SetWeightUnit(unit models.WeightUnit) {
	if !unit.Valid() {
		return
	}

	s.mu.Lock()
	s.weightUnit = unit
	persist := s.persistUnit
	s.mu.Unlock()

	if persist != nil {
		persist(unit)
	}
}

// WeightUnit returns the current store-level default unit.
func (s *Store) WeightUnit() models.WeightUnit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.weightUnit
}

// Reset clears all exercises. The weight unit is untouched.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exercises = nil
}

// Snapshot returns a deep copy of the session state for readers and for
// the save pipeline, so callers never observe in-place mutation.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercises := make([]models.ExerciseDraft, len(s.exercises))
	for i, ex := range s.exercises {
		copied := ex
		copied.Sets = append([]models.SetDraft(nil), ex.Sets...)
		exercises[i] = copied
	}
	return Snapshot{WeightUnit: s.weightUnit, Exercises: exercises}
}

// Snapshot is an immutable copy of a session at one point in time.
type Snapshot struct {
	WeightUnit models.WeightUnit      `json:"weight_unit"`
	Exercises  []models.ExerciseDraft `json:"exercises"`
}

// find returns a pointer into the exercise slice, valid only under mu.
func (s *Store) find(exerciseID string) *models.ExerciseDraft {
	for i := range s.exercises {
		if s.exercises[i].ID == exerciseID {
			return &s.exercises[i]
		}
	}
	return nil
}

func (s *Store) findSet(exerciseID, setID string) *models.SetDraft {
	ex := s.find(exerciseID)
	if ex == nil {
		return nil
	}
	for i := range ex.Sets {
		if ex.Sets[i].ID == setID {
			return &ex.Sets[i]
		}
	}
	return nil
}
