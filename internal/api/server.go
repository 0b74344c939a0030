package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/leqihan/fcc-exercise-tracker/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports store availability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	exerciseService service.ExerciseServiceI
	db              Pinger
}

type ServicesList struct {
	UserService     service.UserServiceI
	ExerciseService service.ExerciseServiceI
	DB              Pinger
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		exerciseService: servicesOptions.ExerciseService,
		db:              servicesOptions.DB,
	}
	s.mountRoutes()
	return s
}

func (s *Server) mountRoutes() {
	s.mx.Use(
		middleware.Recoverer,
		s.RequestIDMiddleware,
		s.SettingUpLoggerMiddleware,
		s.MetricsMiddleware,
		s.CORSMiddleware,
	)
	s.mx.NotFound(s.NotFound)
	s.mx.Get("/healthz", s.Health)
	s.mx.Handle("/metrics", promhttp.Handler())
	s.mx.Route("/api/exercise", func(r chi.Router) {
		r.Post("/new-user", s.CreateUser)
		r.Get("/users", s.ListUsers)
		r.Post("/add", s.AddActivity)
		r.Get("/log", s.GetLog)
		r.Get("/activities", s.ListActivities)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", slog.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("graceful shutdown failed: " + err.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
