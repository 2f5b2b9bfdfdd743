package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/loomworks/tasklight/internal/assist"
	"github.com/loomworks/tasklight/internal/auth"
	"github.com/loomworks/tasklight/internal/events"
	"github.com/loomworks/tasklight/internal/store"
)

type Server struct {
	router    *chi.Mux
	port      int
	store     *store.Store
	extractor *assist.Extractor
	analyzer  *assist.Analyzer
	events    *events.Publisher
	jwtSecret []byte
	logger    *slog.Logger
}

// Deps bundles everything the HTTP layer delegates to.
type Deps struct {
	Store       *store.Store
	Extractor   *assist.Extractor
	Analyzer    *assist.Analyzer
	Events      *events.Publisher
	JWTSecret   []byte
	CORSOrigins []string
	Logger      *slog.Logger
}

func NewServer(port int, deps Deps) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	s := &Server{
		router:    router,
		port:      port,
		store:     deps.Store,
		extractor: deps.Extractor,
		analyzer:  deps.Analyzer,
		events:    deps.Events,
		jwtSecret: deps.JWTSecret,
		logger:    deps.Logger,
	}

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.jwtSecret))

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", s.listTasks)
				r.Post("/", s.createTask)
				r.Get("/{id}", s.getTask)
				r.Put("/{id}", s.updateTask)
				r.Patch("/{id}/complete", s.toggleTask)
				r.Delete("/{id}", s.deleteTask)
			})

			r.Post("/assist/extract", s.extractTask)
			r.Post("/assist/analyze", s.analyzeTasks)
		})
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ownerFromRequest reads the authenticated user set by the auth middleware.
func ownerFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ownerID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return uuid.Nil, false
	}
	return ownerID, true
}
