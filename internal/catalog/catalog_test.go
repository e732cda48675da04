package catalog

import (
	"testing"

	"github.com/khushal-mali/ai-workout-tracker/internal/models"
)

// TestFilterExercises verifies case-insensitive substring matching with
// catalog order preserved.
func TestFilterExercises(t *testing.T) {
	all := []models.Exercise{
		{ID: "a", Name: "Push-up"},
		{ID: "b", Name: "Squat"},
		{ID: "c", Name: "Front Squat"},
	}

	got := FilterExercises(all, "sq")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Name != "Squat" || got[1].Name != "Front Squat" {
		t.Errorf("got %q, %q; want Squat, Front Squat", got[0].Name, got[1].Name)
	}
}

// TestFilterExercisesEmptyQuery verifies an empty query returns the full
// list unchanged.
func TestFilterExercisesEmptyQuery(t *testing.T) {
	all := []models.Exercise{{Name: "Push-up"}, {Name: "Squat"}}

	got := FilterExercises(all, "")
	if len(got) != len(all) {
		t.Fatalf("len = %d, want %d", len(got), len(all))
	}
	for i := range all {
		if got[i].Name != all[i].Name {
			t.Errorf("order changed at %d: got %q, want %q", i, got[i].Name, all[i].Name)
		}
	}
}

// TestFilterExercisesNoMatch verifies a non-matching query yields an empty
// result rather than an error.
func TestFilterExercisesNoMatch(t *testing.T) {
	got := FilterExercises([]models.Exercise{{Name: "Push-up"}}, "deadlift")
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

// TestDifficultyMetadata verifies the fixed mapping table and the neutral
// fallback for unknown values.
func TestDifficultyMetadata(t *testing.T) {
	tests := []struct {
		difficulty models.Difficulty
		color      string
		label      string
	}{
		{models.DifficultyBeginner, "green", "Beginner"},
		{models.DifficultyIntermediate, "yellow", "Intermediate"},
		{models.DifficultyAdvanced, "red", "Advanced"},
		{"advance", "red", "Advanced"}, // legacy catalog spelling
		{"elite", "gray", "Unknown"},
		{"", "gray", "Unknown"},
	}

	for _, tt := range tests {
		if got := DifficultyColor(tt.difficulty); got != tt.color {
			t.Errorf("DifficultyColor(%q) = %q, want %q", tt.difficulty, got, tt.color)
		}
		if got := DifficultyLabel(tt.difficulty); got != tt.label {
			t.Errorf("DifficultyLabel(%q) = %q, want %q", tt.difficulty, got, tt.label)
		}
	}
}
