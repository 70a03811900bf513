package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/DivyanshSaharan/ContestTrack/internal/api/auth"
	"github.com/DivyanshSaharan/ContestTrack/internal/api/handlers"
	"github.com/DivyanshSaharan/ContestTrack/internal/api/middleware"
	"github.com/DivyanshSaharan/ContestTrack/internal/cache"
	"github.com/DivyanshSaharan/ContestTrack/internal/config"
	"github.com/DivyanshSaharan/ContestTrack/internal/repository"

	"github.com/gorilla/mux"
)

// Server is the REST API in front of the contest store.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	router     *mux.Router

	jwtManager  *auth.JWTManager
	rateLimiter *middleware.RateLimiter

	healthHandler     *handlers.HealthHandler
	authHandler       *handlers.AuthHandler
	contestHandler    *handlers.ContestHandler
	preferenceHandler *handlers.PreferenceHandler
	reminderHandler   *handlers.ReminderHandler
	adminHandler      *handlers.AdminHandler
}

func NewServer(
	cfg *config.Config,
	userRepo repository.UserRepository,
	contestRepo repository.ContestRepository,
	notifPrefsRepo repository.NotificationPreferenceRepository,
	contestPrefsRepo repository.ContestPreferenceRepository,
	reminderRepo repository.ContestReminderRepository,
	contestCache *cache.Cache,
	importer handlers.ImportRunner,
) *Server {
	s := &Server{
		config: cfg,
	}

	s.jwtManager = auth.NewJWTManager(cfg.Server.JWTSecret, 24*time.Hour)
	s.rateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit)

	s.healthHandler = handlers.NewHealthHandler()
	s.authHandler = handlers.NewAuthHandler(userRepo, s.jwtManager)
	s.contestHandler = handlers.NewContestHandler(contestRepo, contestPrefsRepo, contestCache)
	s.preferenceHandler = handlers.NewPreferenceHandler(notifPrefsRepo, contestPrefsRepo)
	s.reminderHandler = handlers.NewReminderHandler(reminderRepo, contestRepo)
	s.adminHandler = handlers.NewAdminHandler(importer, contestCache)

	s.setupRouter()

	return s
}

func (s *Server) setupRouter() {
	r := mux.NewRouter()

	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.CORSMiddleware(s.config.Server.AllowedOrigins))
	r.Use(s.rateLimiter.RateLimitMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/health", s.healthHandler.Health).Methods("GET")
	api.HandleFunc("/ping", s.healthHandler.Ping).Methods("GET")

	api.HandleFunc("/auth/register", s.authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", s.authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", s.authHandler.RefreshToken).Methods("POST")

	api.HandleFunc("/contests", s.contestHandler.ListContests).Methods("GET")
	api.HandleFunc("/contests/upcoming", s.contestHandler.UpcomingContests).Methods("GET")
	api.HandleFunc("/contests/past", s.contestHandler.PastContests).Methods("GET")
	api.HandleFunc("/contests/{id:[0-9]+}", s.contestHandler.GetContest).Methods("GET")

	// Routes requiring a valid token.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuthMiddleware(s.jwtManager))

	protected.HandleFunc("/auth/me", s.authHandler.Me).Methods("GET")

	protected.HandleFunc("/contests/recommended", s.contestHandler.RecommendedContests).Methods("GET")
	protected.HandleFunc("/contests/{id:[0-9]+}/reminders", s.reminderHandler.CreateReminder).Methods("POST")
	protected.HandleFunc("/reminders", s.reminderHandler.ListReminders).Methods("GET")

	protected.HandleFunc("/preferences/notifications", s.preferenceHandler.GetNotificationPreferences).Methods("GET")
	protected.HandleFunc("/preferences/notifications", s.preferenceHandler.UpdateNotificationPreferences).Methods("PUT")
	protected.HandleFunc("/preferences/contests", s.preferenceHandler.GetContestPreferences).Methods("GET")
	protected.HandleFunc("/preferences/contests", s.preferenceHandler.UpdateContestPreferences).Methods("PUT")

	protected.HandleFunc("/admin/refresh", s.adminHandler.Refresh).Methods("POST")

	s.router = r
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("API server starting on %s", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	log.Println("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("API server stopped")
	return nil
}

// Router exposes the router for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}
