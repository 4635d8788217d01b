// Package server exposes the week planner over a small JSON API.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/campuswellness/weekplan/internal/logger"
	"github.com/campuswellness/weekplan/internal/metrics"
	"github.com/campuswellness/weekplan/internal/scheduler"
	"github.com/campuswellness/weekplan/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// Options wires the server's dependencies. Metrics may be nil.
type Options struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

type Server struct {
	store   storage.Provider
	sched   *scheduler.Scheduler
	metrics *metrics.Metrics
	now     func() time.Time
	log     *log.Logger
}

func New(opts Options) *Server {
	if opts.Scheduler == nil {
		opts.Scheduler = scheduler.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		store:   opts.Store,
		sched:   opts.Scheduler,
		metrics: opts.Metrics,
		now:     opts.Now,
		log:     logger.Component("server"),
	}
}

// Router registers every route. Each route is wrapped for request metrics.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	handle := func(path, route string, fn http.HandlerFunc, methods ...string) {
		r.Handle(path, s.metrics.WrapHandler(route, fn)).Methods(methods...)
	}

	handle("/healthz", "healthz", s.health, http.MethodGet)

	api := "/api/users/{username}"
	handle(api+"/week", "week", s.week, http.MethodGet)
	handle(api+"/suggestions/{date}", "suggestion", s.getSuggestion, http.MethodGet)
	handle(api+"/suggestions/{date}", "suggestion_compute", s.computeSuggestion, http.MethodPost)
	handle(api+"/reminders", "reminders", s.reminders, http.MethodGet)
	handle(api+"/assignments", "assignments", s.assignments, http.MethodGet)
	handle(api+"/calendar.ics", "calendar", s.calendar, http.MethodGet)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)
	}
	return r
}

// Handler returns the router behind access logging and panic recovery.
func (s *Server) Handler() http.Handler {
	access := s.log.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}).Writer()
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(s.log.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})),
	)
	return recovery(handlers.LoggingHandler(access, s.Router()))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          s.log.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
