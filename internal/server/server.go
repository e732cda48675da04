package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/khushal-mali/ai-workout-tracker/internal/models"
	"github.com/khushal-mali/ai-workout-tracker/internal/session"
	"github.com/khushal-mali/ai-workout-tracker/internal/workout"
)

// ContentAPI is the read/delete slice of the content store the handlers
// need. *content.Client satisfies it.
type ContentAPI interface {
	Exercises(ctx context.Context) ([]models.Exercise, error)
	ExerciseByID(ctx context.Context, id string) (*models.Exercise, error)
	WorkoutsForUser(ctx context.Context, userID string) ([]models.WorkoutRecord, error)
	WorkoutByID(ctx context.Context, id string) (*models.WorkoutRecord, error)
	DeleteWorkout(ctx context.Context, id string) error
}

// GuidanceAPI produces coaching text for an exercise name.
type GuidanceAPI interface {
	Guidance(ctx context.Context, exerciseName string) (string, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	content  ContentAPI
	guidance GuidanceAPI
	sessions *session.Manager
	saver    *workout.Saver
	log      *slog.Logger
	apiKey   string
	whois    WhoIsClient
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(content ContentAPI, guide GuidanceAPI, sessions *session.Manager, saver *workout.Saver, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		content:  content,
		guidance: guide,
		sessions: sessions,
		saver:    saver,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale switches identity resolution to Tailscale WhoIs. Must be
// called before the server starts handling requests.
func (s *Server) SetTailscale(lc WhoIsClient) {
	s.whois = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	// Catalog and history (read side)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{id}", s.handleGetExercise)
	s.router.Post("/api/v1/guidance", s.handleGuidance)
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/me", s.handleMe)

	// Session mutations (API key required)
	s.router.Route("/api/v1/session", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Get("/", s.handleGetSession)
		r.Delete("/", s.handleCancelSession)
		r.Post("/complete", s.handleCompleteSession)
		r.Put("/weight-unit", s.handleSetWeightUnit)
		r.Post("/exercises", s.handleAddExercise)
		r.Delete("/exercises/{exerciseID}", s.handleRemoveExercise)
		r.Post("/exercises/{exerciseID}/sets", s.handleAddSet)
		r.Patch("/exercises/{exerciseID}/sets/{setID}", s.handleUpdateSet)
		r.Delete("/exercises/{exerciseID}/sets/{setID}", s.handleRemoveSet)
	})

	// Record deletion requires the same key as session mutations.
	s.router.With(APIKeyAuth(s.apiKey)).Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
}
