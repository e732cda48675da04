package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	"github.com/khushal-mali/ai-workout-tracker/internal/session"
	"github.com/khushal-mali/ai-workout-tracker/internal/workout"
)

const testAPIKey = "test-key"

// fakeContent implements both the handler-facing ContentAPI and the save
// pipeline's ContentStore against in-memory data.
type fakeContent struct {
	exercises []models.Exercise
	workouts  []models.WorkoutRecord
	deleted   []string

	failAll    bool
	createErr  error
	createdIDs int
}

func (f *fakeContent) Exercises(ctx context.Context) ([]models.Exercise, error) {
	if f.failAll {
		return nil, errors.New("content store down")
	}
	return f.exercises, nil
}

func (f *fakeContent) ExerciseByID(ctx context.Context, id string) (*models.Exercise, error) {
	if f.failAll {
		return nil, errors.New("content store down")
	}
	for _, ex := range f.exercises {
		if ex.ID == id {
			return &ex, nil
		}
	}
	return nil, nil
}

func (f *fakeContent) ExerciseByName(ctx context.Context, name string) (*models.Exercise, error) {
	for _, ex := range f.exercises {
		if ex.Name == name {
			return &ex, nil
		}
	}
	return nil, nil
}

func (f *fakeContent) WorkoutsForUser(ctx context.Context, userID string) ([]models.WorkoutRecord, error) {
	if f.failAll {
		return nil, errors.New("content store down")
	}
	var out []models.WorkoutRecord
	for _, rec := range f.workouts {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeContent) WorkoutByID(ctx context.Context, id string) (*models.WorkoutRecord, error) {
	for _, rec := range f.workouts {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

func (f *fakeContent) DeleteWorkout(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeContent) CreateWorkout(ctx context.Context, rec models.WorkoutRecord) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdIDs++
	rec.ID = fmt.Sprintf("workout-%d", f.createdIDs)
	f.workouts = append(f.workouts, rec)
	return rec.ID, nil
}

type fakeGuidance struct {
	message string
	err     error
}

func (f *fakeGuidance) Guidance(ctx context.Context, exerciseName string) (string, error) {
	return f.message, f.err
}

func newTestServer(t *testing.T, content *fakeContent, guide *fakeGuidance) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	sessions := session.NewManager(nil, log)
	saver := workout.NewSaver(content, log)
	return New(content, guide, sessions, saver, testAPIKey, log)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func authed(extra ...string) map[string]string {
	h := map[string]string{"X-API-Key": testAPIKey}
	for i := 0; i+1 < len(extra); i += 2 {
		h[extra[i]] = extra[i+1]
	}
	return h
}

func sampleCatalog() []models.Exercise {
	return []models.Exercise{
		{ID: "ex-1", Name: "Bench Press", Difficulty: models.DifficultyIntermediate, IsActive: true},
		{ID: "ex-2", Name: "Deadlift", Difficulty: models.DifficultyAdvanced, IsActive: true},
		{ID: "ex-3", Name: "Push Up", Difficulty: models.DifficultyBeginner, IsActive: true},
	}
}

func TestListExercises(t *testing.T) {
	s := newTestServer(t, &fakeContent{exercises: sampleCatalog()}, &fakeGuidance{})

	w := doJSON(t, s, http.MethodGet, "/api/v1/exercises", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var views []exerciseView
	if err := json.NewDecoder(w.Body).Decode(&views); err != nil {
		t.Fatal(err)
	}
	if len(views) != 3 {
		t.Fatalf("got %d exercises, want 3", len(views))
	}
	if views[1].DifficultyColor != "red" || views[1].DifficultyLabel != "Advanced" {
		t.Errorf("difficulty view for %q = %q/%q", views[1].Name, views[1].DifficultyColor, views[1].DifficultyLabel)
	}
}

func TestListExercisesFiltered(t *testing.T) {
	s := newTestServer(t, &fakeContent{exercises: sampleCatalog()}, &fakeGuidance{})

	w := doJSON(t, s, http.MethodGet, "/api/v1/exercises?q=press", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var views []exerciseView
	if err := json.NewDecoder(w.Body).Decode(&views); err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 || views[0].Name != "Bench Press" {
		t.Errorf("filter result = %+v", views)
	}
}

func TestGetExerciseNotFound(t *testing.T) {
	s := newTestServer(t, &fakeContent{exercises: sampleCatalog()}, &fakeGuidance{})

	w := doJSON(t, s, http.MethodGet, "/api/v1/exercises/nope", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestContentErrorIsBadGateway(t *testing.T) {
	s := newTestServer(t, &fakeContent{failAll: true}, &fakeGuidance{})

	w := doJSON(t, s, http.MethodGet, "/api/v1/exercises", nil, nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", w.Code)
	}
}

func TestGuidance(t *testing.T) {
	s := newTestServer(t, &fakeContent{}, &fakeGuidance{message: "Keep your back straight."})

	w := doJSON(t, s, http.MethodPost, "/api/v1/guidance",
		map[string]string{"exercise_name": "Deadlift"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["message"] != "Keep your back straight." {
		t.Errorf("message = %q", resp["message"])
	}
}

func TestGuidanceRequiresName(t *testing.T) {
	s := newTestServer(t, &fakeContent{}, &fakeGuidance{})

	w := doJSON(t, s, http.MethodPost, "/api/v1/guidance", map[string]string{}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListWorkoutsScopedToUser(t *testing.T) {
	content := &fakeContent{workouts: []models.WorkoutRecord{
		{ID: "w-1", UserID: "alice@example.com", Date: time.Now(), Duration: 125,
			Exercises: []models.RecordExercise{{ExerciseID: "ex-1", Sets: []models.RecordSet{{Reps: 10, Weight: 50}}}}},
		{ID: "w-2", UserID: "bob@example.com", Date: time.Now(), Duration: 60},
	}}
	s := newTestServer(t, content, &fakeGuidance{})

	w := doJSON(t, s, http.MethodGet, "/api/v1/workouts", nil,
		map[string]string{"X-User-ID": "alice@example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var views []workoutView
	if err := json.NewDecoder(w.Body).Decode(&views); err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 || views[0].ID != "w-1" {
		t.Fatalf("views = %+v", views)
	}
	if views[0].FormattedDuration != "2m 5s" {
		t.Errorf("formatted duration = %q", views[0].FormattedDuration)
	}
	if views[0].Summary.TotalSets != 1 {
		t.Errorf("summary sets = %d", views[0].Summary.TotalSets)
	}
}

func TestSessionRequiresAPIKey(t *testing.T) {
	s := newTestServer(t, &fakeContent{}, &fakeGuidance{})

	if w := doJSON(t, s, http.MethodGet, "/api/v1/session", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", w.Code)
	}
	wrong := map[string]string{"X-API-Key": "wrong"}
	if w := doJSON(t, s, http.MethodGet, "/api/v1/session", nil, wrong); w.Code != http.StatusForbidden {
		t.Errorf("wrong key: status = %d, want 403", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	content := &fakeContent{exercises: sampleCatalog()}
	s := newTestServer(t, content, &fakeGuidance{})

	// Add an exercise.
	w := doJSON(t, s, http.MethodPost, "/api/v1/session/exercises",
		models.ExerciseRef{CatalogID: "ex-1", Name: "Bench Press"}, authed())
	if w.Code != http.StatusCreated {
		t.Fatalf("add exercise: status = %d, body = %s", w.Code, w.Body.String())
	}
	var ex models.ExerciseDraft
	if err := json.NewDecoder(w.Body).Decode(&ex); err != nil {
		t.Fatal(err)
	}
	if ex.ID == "" {
		t.Fatal("exercise draft has no id")
	}

	// Add a set.
	w = doJSON(t, s, http.MethodPost, "/api/v1/session/exercises/"+ex.ID+"/sets", nil, authed())
	if w.Code != http.StatusCreated {
		t.Fatalf("add set: status = %d", w.Code)
	}
	var set models.SetDraft
	if err := json.NewDecoder(w.Body).Decode(&set); err != nil {
		t.Fatal(err)
	}
	if set.WeightUnit != models.DefaultWeightUnit {
		t.Errorf("new set unit = %q", set.WeightUnit)
	}

	// Fill it in and mark complete.
	reps, weight := "8", "135"
	w = doJSON(t, s, http.MethodPatch, "/api/v1/session/exercises/"+ex.ID+"/sets/"+set.ID,
		map[string]any{"reps": reps, "weight": weight, "toggle_completion": true}, authed())
	if w.Code != http.StatusOK {
		t.Fatalf("update set: status = %d", w.Code)
	}
	var snap session.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if got := snap.Exercises[0].Sets[0]; got.Reps != "8" || !got.IsCompleted {
		t.Errorf("set after update = %+v", got)
	}

	// Complete the workout.
	w = doJSON(t, s, http.MethodPost, "/api/v1/session/complete",
		map[string]float64{"elapsed_seconds": 300}, authed())
	if w.Code != http.StatusCreated {
		t.Fatalf("complete: status = %d, body = %s", w.Code, w.Body.String())
	}
	var saved workoutView
	if err := json.NewDecoder(w.Body).Decode(&saved); err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" || len(saved.Exercises) != 1 {
		t.Fatalf("saved record = %+v", saved.WorkoutRecord)
	}
	if saved.Exercises[0].Sets[0].Reps != 8 || saved.Exercises[0].Sets[0].Weight != 135 {
		t.Errorf("committed set = %+v", saved.Exercises[0].Sets[0])
	}

	// Session is cleared after a successful save.
	w = doJSON(t, s, http.MethodGet, "/api/v1/session", nil, authed())
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Exercises) != 0 {
		t.Errorf("session not reset: %+v", snap.Exercises)
	}
}

func TestCompleteWithNoCompletedSets(t *testing.T) {
	s := newTestServer(t, &fakeContent{exercises: sampleCatalog()}, &fakeGuidance{})

	doJSON(t, s, http.MethodPost, "/api/v1/session/exercises",
		models.ExerciseRef{CatalogID: "ex-1", Name: "Bench Press"}, authed())

	w := doJSON(t, s, http.MethodPost, "/api/v1/session/complete",
		map[string]float64{"elapsed_seconds": 60}, authed())
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestCompleteSaveFailureKeepsSession(t *testing.T) {
	content := &fakeContent{exercises: sampleCatalog(), createErr: errors.New("mutation rejected")}
	s := newTestServer(t, content, &fakeGuidance{})

	var ex models.ExerciseDraft
	w := doJSON(t, s, http.MethodPost, "/api/v1/session/exercises",
		models.ExerciseRef{CatalogID: "ex-1", Name: "Bench Press"}, authed())
	if err := json.NewDecoder(w.Body).Decode(&ex); err != nil {
		t.Fatal(err)
	}
	var set models.SetDraft
	w = doJSON(t, s, http.MethodPost, "/api/v1/session/exercises/"+ex.ID+"/sets", nil, authed())
	if err := json.NewDecoder(w.Body).Decode(&set); err != nil {
		t.Fatal(err)
	}
	doJSON(t, s, http.MethodPatch, "/api/v1/session/exercises/"+ex.ID+"/sets/"+set.ID,
		map[string]any{"reps": "5", "weight": "100", "toggle_completion": true}, authed())

	w = doJSON(t, s, http.MethodPost, "/api/v1/session/complete",
		map[string]float64{"elapsed_seconds": 60}, authed())
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}

	// The draft is still there for a retry.
	var snap session.Snapshot
	w = doJSON(t, s, http.MethodGet, "/api/v1/session", nil, authed())
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Exercises) != 1 {
		t.Errorf("session lost after failed save: %+v", snap.Exercises)
	}
}

func TestSetWeightUnit(t *testing.T) {
	s := newTestServer(t, &fakeContent{}, &fakeGuidance{})

	w := doJSON(t, s, http.MethodPut, "/api/v1/session/weight-unit",
		map[string]string{"unit": "kg"}, authed())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = doJSON(t, s, http.MethodPut, "/api/v1/session/weight-unit",
		map[string]string{"unit": "stone"}, authed())
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid unit: status = %d, want 400", w.Code)
	}
}

func TestCancelSession(t *testing.T) {
	s := newTestServer(t, &fakeContent{exercises: sampleCatalog()}, &fakeGuidance{})

	doJSON(t, s, http.MethodPost, "/api/v1/session/exercises",
		models.ExerciseRef{CatalogID: "ex-1", Name: "Bench Press"}, authed())

	if w := doJSON(t, s, http.MethodDelete, "/api/v1/session", nil, authed()); w.Code != http.StatusOK {
		t.Fatalf("cancel: status = %d", w.Code)
	}

	var snap session.Snapshot
	w := doJSON(t, s, http.MethodGet, "/api/v1/session", nil, authed())
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Exercises) != 0 {
		t.Errorf("session not cleared: %+v", snap.Exercises)
	}
}

func TestDeleteWorkoutRequiresAPIKey(t *testing.T) {
	content := &fakeContent{workouts: []models.WorkoutRecord{{ID: "w-1", UserID: "local"}}}
	s := newTestServer(t, content, &fakeGuidance{})

	if w := doJSON(t, s, http.MethodDelete, "/api/v1/workouts/w-1", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", w.Code)
	}

	w := doJSON(t, s, http.MethodDelete, "/api/v1/workouts/w-1", nil, authed())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(content.deleted) != 1 || content.deleted[0] != "w-1" {
		t.Errorf("deleted = %v", content.deleted)
	}
}

func TestStats(t *testing.T) {
	content := &fakeContent{workouts: []models.WorkoutRecord{
		{UserID: "local", Duration: 60, Exercises: []models.RecordExercise{
			{ExerciseID: "ex-1", Sets: []models.RecordSet{{Reps: 10, Weight: 50, WeightUnit: models.UnitKg}}},
		}},
		{UserID: "local", Duration: 120},
	}}
	s := newTestServer(t, content, &fakeGuidance{})

	w := doJSON(t, s, http.MethodGet, "/api/v1/stats", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got struct {
		TotalWorkouts        int     `json:"total_workouts"`
		TotalDurationSeconds float64 `json:"total_duration_seconds"`
	}
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.TotalWorkouts != 2 || got.TotalDurationSeconds != 180 {
		t.Errorf("stats = %+v", got)
	}
}
