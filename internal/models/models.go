package models

import "time"

// WeightUnit is the unit a set's weight was entered in.
type WeightUnit string

const (
	UnitKg  WeightUnit = "kg"
	UnitLbs WeightUnit = "lbs"
)

// DefaultWeightUnit is used when a user has no stored preference.
const DefaultWeightUnit = UnitLbs

// Valid reports whether u is one of the two supported units.
func (u WeightUnit) Valid() bool {
	return u == UnitKg || u == UnitLbs
}

// Difficulty is the catalog's difficulty rating for an exercise.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Exercise is a document from the external exercise catalog.
type Exercise struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	ImageURL    string     `json:"image_url,omitempty"`
	VideoURL    string     `json:"video_url,omitempty"`
	IsActive    bool       `json:"is_active"`
}

// ExerciseRef identifies a catalog exercise when adding it to a session.
// Name is denormalized for display; CatalogID is the document identity the
// save pipeline resolves against.
type ExerciseRef struct {
	CatalogID string `json:"catalog_id"`
	Name      string `json:"name"`
}

// WorkoutRecord is a persisted workout document in the content store.
// From this service's point of view it is immutable once created.
type WorkoutRecord struct {
	ID        string           `json:"id,omitempty"`
	UserID    string           `json:"user_id"`
	Date      time.Time        `json:"date"`
	Duration  float64          `json:"duration"`
	Exercises []RecordExercise `json:"exercises"`
}

// RecordExercise is one exercise entry inside a persisted workout, with its
// catalog reference resolved to {id, name} on the read path.
type RecordExercise struct {
	ExerciseID   string      `json:"exercise_id"`
	ExerciseName string      `json:"exercise_name,omitempty"`
	Sets         []RecordSet `json:"sets"`
}

// RecordSet is a committed, validated set. Only completed drafts with
// parseable numbers ever become RecordSets.
type RecordSet struct {
	Reps       int        `json:"reps"`
	Weight     float64    `json:"weight"`
	WeightUnit WeightUnit `json:"weight_unit,omitempty"`
}
