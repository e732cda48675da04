// Package catalog provides read-side helpers over the external exercise
// library: difficulty display metadata and name filtering.
package catalog

import "github.com/khushal-mali/ai-workout-tracker/internal/models"

// DifficultyColor returns the UI color token for a difficulty rating.
// Unrecognized values map to the neutral gray token; unknown input is a
// valid case, not a failure.
func DifficultyColor(d models.Difficulty) string {
	switch d {
	case models.DifficultyBeginner:
		return "green"
	case models.DifficultyIntermediate:
		return "yellow"
	case models.DifficultyAdvanced, "advance":
		return "red"
	default:
		return "gray"
	}
}

// DifficultyLabel returns the human-readable label for a difficulty rating.
func DifficultyLabel(d models.Difficulty) string {
	switch d {
	case models.DifficultyBeginner:
		return "Beginner"
	case models.DifficultyIntermediate:
		return "Intermediate"
	case models.DifficultyAdvanced, "advance":
		return "Advanced"
	default:
		return "Unknown"
	}
}
