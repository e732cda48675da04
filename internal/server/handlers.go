package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/khushal-mali/ai-workout-tracker/internal/catalog"
	"github.com/khushal-mali/ai-workout-tracker/internal/format"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	"github.com/khushal-mali/ai-workout-tracker/internal/session"
	"github.com/khushal-mali/ai-workout-tracker/internal/stats"
	"github.com/khushal-mali/ai-workout-tracker/internal/workout"
)

// exerciseView decorates a catalog exercise with display metadata.
type exerciseView struct {
	models.Exercise
	DifficultyColor string `json:"difficulty_color"`
	DifficultyLabel string `json:"difficulty_label"`
}

func toExerciseView(ex models.Exercise) exerciseView {
	return exerciseView{
		Exercise:        ex,
		DifficultyColor: catalog.DifficultyColor(ex.Difficulty),
		DifficultyLabel: catalog.DifficultyLabel(ex.Difficulty),
	}
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	all, err := s.content.Exercises(r.Context())
	if err != nil {
		s.log.Error("fetching exercises", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not fetch exercise catalog"})
		return
	}

	filtered := catalog.FilterExercises(all, r.URL.Query().Get("q"))
	views := make([]exerciseView, len(filtered))
	for i, ex := range filtered {
		views[i] = toExerciseView(ex)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	ex, err := s.content.ExerciseByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.log.Error("fetching exercise", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not fetch exercise"})
		return
	}
	if ex == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}
	writeJSON(w, http.StatusOK, toExerciseView(*ex))
}

func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ExerciseName string `json:"exercise_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.ExerciseName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise name is required"})
		return
	}

	text, err := s.guidance.Guidance(r.Context(), body.ExerciseName)
	if err != nil {
		s.log.Error("guidance request", "exercise", body.ExerciseName, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "error fetching guidance"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": text})
}

// workoutView is a persisted record plus its derived history-list numbers.
type workoutView struct {
	models.WorkoutRecord
	Summary           stats.WorkoutSummary `json:"summary"`
	FormattedDuration string               `json:"formatted_duration"`
}

func toWorkoutView(rec models.WorkoutRecord) workoutView {
	return workoutView{
		WorkoutRecord:     rec,
		Summary:           stats.Summarize(rec),
		FormattedDuration: format.FormatDuration(rec.Duration),
	}
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	user := UserInfoFromContext(r.Context())
	records, err := s.content.WorkoutsForUser(r.Context(), user.Login)
	if err != nil {
		s.log.Error("fetching workouts", "user", user.Login, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not fetch workouts"})
		return
	}

	views := make([]workoutView, len(records))
	for i, rec := range records {
		views[i] = toWorkoutView(rec)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.content.WorkoutByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.log.Error("fetching workout", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not fetch workout"})
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutView(*rec))
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.content.DeleteWorkout(r.Context(), id); err != nil {
		s.log.Error("deleting workout", "workout", id, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not delete workout"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	user := UserInfoFromContext(r.Context())
	records, err := s.content.WorkoutsForUser(r.Context(), user.Login)
	if err != nil {
		s.log.Error("fetching workouts for stats", "user", user.Login, "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "could not fetch workouts"})
		return
	}
	writeJSON(w, http.StatusOK, stats.Aggregate(records))
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, UserInfoFromContext(r.Context()))
}

// --- Session handlers ---

func (s *Server) store(r *http.Request) *session.Store {
	return s.sessions.ForUser(UserInfoFromContext(r.Context()).Login)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store(r).Snapshot())
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	s.store(r).Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var ref models.ExerciseRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if ref.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise name is required"})
		return
	}
	ex := s.store(r).AddExercise(ref)
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	s.store(r).RemoveExercise(chi.URLParam(r, "exerciseID"))
	writeJSON(w, http.StatusOK, s.store(r).Snapshot())
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	set, ok := s.store(r).AddSet(chi.URLParam(r, "exerciseID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not in session"})
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reps             *string `json:"reps"`
		Weight           *string `json:"weight"`
		ToggleCompletion bool    `json:"toggle_completion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	store := s.store(r)
	exerciseID := chi.URLParam(r, "exerciseID")
	setID := chi.URLParam(r, "setID")

	if body.Reps != nil {
		store.UpdateSetField(exerciseID, setID, session.FieldReps, *body.Reps)
	}
	if body.Weight != nil {
		store.UpdateSetField(exerciseID, setID, session.FieldWeight, *body.Weight)
	}
	if body.ToggleCompletion {
		store.ToggleSetCompletion(exerciseID, setID)
	}
	writeJSON(w, http.StatusOK, store.Snapshot())
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	s.store(r).RemoveSet(chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"))
	writeJSON(w, http.StatusOK, s.store(r).Snapshot())
}

func (s *Server) handleSetWeightUnit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Unit models.WeightUnit `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if !body.Unit.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unit must be kg or lbs"})
		return
	}
	s.store(r).SetWeightUnit(body.Unit)
	writeJSON(w, http.StatusOK, map[string]string{"unit": string(body.Unit)})
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ElapsedSeconds float64 `json:"elapsed_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	user := UserInfoFromContext(r.Context())
	store := s.sessions.ForUser(user.Login)

	rec, err := s.saver.Save(r.Context(), user.Login, store.Snapshot(), body.ElapsedSeconds)
	if err != nil {
		writeJSON(w, saveErrorStatus(err), map[string]string{"error": err.Error()})
		return
	}

	// The session survives failed saves for retry; only success clears it.
	store.Reset()
	writeJSON(w, http.StatusCreated, toWorkoutView(rec))
}

// saveErrorStatus maps the save pipeline's error taxonomy to HTTP codes.
func saveErrorStatus(err error) int {
	switch {
	case errors.Is(err, workout.ErrSaveInProgress):
		return http.StatusConflict
	case errors.Is(err, workout.ErrNoCompletedSets):
		return http.StatusUnprocessableEntity
	case errors.Is(err, workout.ErrExerciseNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
