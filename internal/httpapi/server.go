// Package httpapi serves the planning services as a JSON API for the
// dashboard.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/daybook/internal/agent"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/rs/cors"
)

type Deps struct {
	Tasks     service.TaskService
	Events    service.EventService
	Goals     service.GoalService
	Planning  service.PlanningService
	Priority  service.PriorityService
	Assistant *agent.Assistant
	Location  *time.Location
	Logger    *slog.Logger
	Now       func() time.Time
}

type Options struct {
	AllowedOrigins []string
	// JWTSecret enables bearer auth when non-empty.
	JWTSecret string
}

type Server struct {
	Deps
	opts   Options
	logger *slog.Logger
}

func NewServer(deps Deps, opts Options) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Server{Deps: deps, opts: opts, logger: logger}
}

// Handler returns the routed API wrapped in request logging, optional
// bearer auth and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /time", s.serverTime)

	mux.HandleFunc("GET /tasks", s.listTasks)
	mux.HandleFunc("POST /tasks", s.createTask)
	mux.HandleFunc("PUT /tasks/{id}", s.updateTask)
	mux.HandleFunc("DELETE /tasks/{id}", s.deleteTask)

	mux.HandleFunc("GET /events", s.listEvents)
	mux.HandleFunc("POST /events", s.createEvent)
	mux.HandleFunc("PUT /events/{id}", s.updateEvent)
	mux.HandleFunc("DELETE /events/{id}", s.deleteEvent)

	mux.HandleFunc("GET /goals", s.listGoals)
	mux.HandleFunc("POST /goals", s.createGoal)
	mux.HandleFunc("PUT /goals/{id}", s.updateGoal)
	mux.HandleFunc("DELETE /goals/{id}", s.deleteGoal)

	mux.HandleFunc("GET /plan", s.plan)
	mux.HandleFunc("GET /evaluate", s.evaluate)
	mux.HandleFunc("GET /trend", s.trend)
	mux.HandleFunc("GET /prioritize", s.prioritize)
	mux.HandleFunc("GET /focus", s.focus)

	if s.Assistant != nil {
		mux.HandleFunc("POST /fn/{name}", s.callFunction)
		mux.HandleFunc("POST /agent/chat", s.chat)
		mux.HandleFunc("POST /agent/reflect", s.reflect)
		mux.HandleFunc("GET /agent/state", s.agentState)
		mux.HandleFunc("GET /agent/memory", s.agentMemory)
	}

	var h http.Handler = mux
	if s.opts.JWTSecret != "" {
		h = requireBearer([]byte(s.opts.JWTSecret), h)
	}
	h = s.logRequests(h)

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return c.Handler(h)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http_request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
