// Package workout turns an in-progress session into a persisted workout
// record: it resolves session exercises against the catalog, commits set
// drafts to validated numerics, and issues the single create call.
package workout

import "errors"

var (
	// ErrExerciseNotFound means a session exercise could not be resolved
	// to a catalog document. The whole save is aborted; no partial
	// document is ever written.
	ErrExerciseNotFound = errors.New("exercise not found in catalog")

	// ErrNoCompletedSets means no exercise had a single completed set
	// with reps and weight filled in. No network call is made.
	ErrNoCompletedSets = errors.New("complete at least one set before saving")

	// ErrSaveFailed wraps a transport or non-success response from the
	// content store. The session is left untouched so the user can retry.
	ErrSaveFailed = errors.New("failed to save workout")

	// ErrSaveInProgress is returned when a save is already in flight for
	// the same user. The second attempt is rejected, never queued.
	ErrSaveInProgress = errors.New("a save is already in progress")
)
