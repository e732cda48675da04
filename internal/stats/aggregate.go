// Package stats derives display statistics from persisted workout records.
// Everything here is recomputed on each fetch; nothing is stored.
package stats

import (
	"math"

	"github.com/khushal-mali/ai-workout-tracker/internal/models"
)

// Stats holds the aggregate numbers shown on the profile and history
// views. Malformed or missing values count as zero; aggregation never
// fails.
type Stats struct {
	TotalWorkouts          int     `json:"total_workouts"`
	TotalDurationSeconds   float64 `json:"total_duration_seconds"`
	AverageDurationSeconds float64 `json:"average_duration_seconds"`
	TotalSets              int     `json:"total_sets"`

	// TotalVolume collapses all sets into one number, with Unit taken
	// from the last set encountered that had both weight and reps. Kept
	// for parity with the original client display.
	TotalVolume Volume `json:"total_volume"`

	// VolumeByUnit partitions volume by the unit each set was recorded
	// in, so mixed kg/lbs histories are not silently summed together.
	VolumeByUnit map[models.WeightUnit]float64 `json:"volume_by_unit,omitempty"`
}

// Volume is a weight-times-reps total in a single unit.
type Volume struct {
	Amount float64           `json:"amount"`
	Unit   models.WeightUnit `json:"unit"`
}

// Aggregate computes stats over a user's persisted workout records.
func Aggregate(records []models.WorkoutRecord) Stats {
	s := Stats{
		TotalWorkouts: len(records),
		TotalVolume:   Volume{Unit: models.DefaultWeightUnit},
	}

	byUnit := make(map[models.WeightUnit]float64)
	for _, rec := range records {
		s.TotalDurationSeconds += rec.Duration
		for _, ex := range rec.Exercises {
			s.TotalSets += len(ex.Sets)
			for _, set := range ex.Sets {
				if set.Weight == 0 || set.Reps == 0 {
					continue
				}
				vol := set.Weight * float64(set.Reps)
				s.TotalVolume.Amount += vol

				unit := set.WeightUnit
				if !unit.Valid() {
					unit = models.DefaultWeightUnit
				}
				s.TotalVolume.Unit = unit
				byUnit[unit] += vol
			}
		}
	}

	if s.TotalWorkouts > 0 {
		s.AverageDurationSeconds = math.Round(s.TotalDurationSeconds / float64(s.TotalWorkouts))
	}
	if len(byUnit) > 0 {
		s.VolumeByUnit = byUnit
	}
	return s
}

// WorkoutSummary is the derived per-record view used by history lists.
type WorkoutSummary struct {
	TotalSets     int      `json:"total_sets"`
	Volume        Volume   `json:"volume"`
	ExerciseNames []string `json:"exercise_names"`
}

// Summarize derives the history-list numbers for a single record.
func Summarize(rec models.WorkoutRecord) WorkoutSummary {
	sum := WorkoutSummary{Volume: Volume{Unit: models.DefaultWeightUnit}}
	for _, ex := range rec.Exercises {
		sum.TotalSets += len(ex.Sets)
		for _, set := range ex.Sets {
			if set.Weight == 0 || set.Reps == 0 {
				continue
			}
			sum.Volume.Amount += set.Weight * float64(set.Reps)
			if set.WeightUnit.Valid() {
				sum.Volume.Unit = set.WeightUnit
			}
		}
	}
	sum.ExerciseNames = ExerciseNames(rec)
	return sum
}

// ExerciseNames returns the record's exercise names in order. Duplicates
// are kept; empty names are dropped.
func ExerciseNames(rec models.WorkoutRecord) []string {
	var names []string
	for _, ex := range rec.Exercises {
		if ex.ExerciseName != "" {
			names = append(names, ex.ExerciseName)
		}
	}
	return names
}
