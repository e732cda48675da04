package catalog

import (
	"strings"

	"github.com/khushal-mali/ai-workout-tracker/internal/models"
)

// FilterExercises returns the exercises whose name contains query,
// case-insensitively. An empty query returns the input unchanged. No
// ranking is applied; catalog order is preserved.
func FilterExercises(all []models.Exercise, query string) []models.Exercise {
	if query == "" {
		return all
	}

	q := strings.ToLower(query)
	var out []models.Exercise
	for _, ex := range all {
		if strings.Contains(strings.ToLower(ex.Name), q) {
			out = append(out, ex)
		}
	}
	return out
}
