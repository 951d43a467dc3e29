// Package http exposes the REST API: registration and login, then
// owner-scoped category and expense CRUD behind bearer-token auth.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"expensetracker/internal/log"
	"expensetracker/internal/services"
)

type Server struct {
	server     *http.Server
	log        *log.Logger
	auth       *services.AuthService
	categories *services.CategoryService
	expenses   *services.ExpenseService
	limiter    *loginLimiter
}

func New(addr string, logger *log.Logger, auth *services.AuthService,
	categories *services.CategoryService, expenses *services.ExpenseService) *Server {

	s := &Server{
		log:        logger.WithComponent(log.ComponentHTTP),
		auth:       auth,
		categories: categories,
		expenses:   expenses,
		limiter:    newLoginLimiter(defaultAuthAttemptsPerMinute),
	}
	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogging, secureHeaders)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	credentials := api.PathPrefix("/auth").Subrouter()
	credentials.Use(s.limitAuth)
	credentials.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	credentials.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authenticate)
	authed.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	authed.HandleFunc("/users/me", s.handleProfile).Methods(http.MethodGet)
	authed.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost)
	authed.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)
	authed.HandleFunc("/categories/{id:[0-9]+}", s.handleUpdateCategory).Methods(http.MethodPut)
	authed.HandleFunc("/categories/{id:[0-9]+}", s.handleDeleteCategory).Methods(http.MethodDelete)
	authed.HandleFunc("/expenses", s.handleCreateExpense).Methods(http.MethodPost)
	authed.HandleFunc("/expenses", s.handleListExpenses).Methods(http.MethodGet)
	authed.HandleFunc("/expenses/{id:[0-9]+}", s.handleGetExpense).Methods(http.MethodGet)
	authed.HandleFunc("/expenses/{id:[0-9]+}", s.handleUpdateExpense).Methods(http.MethodPut)
	authed.HandleFunc("/expenses/{id:[0-9]+}", s.handleDeleteExpense).Methods(http.MethodDelete)

	return r
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.log.Info("Starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) MustStart() {
	if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("failed to start server: " + err.Error())
	}
}

func (s *Server) Stop(ctx context.Context) error {
	defer s.log.Info("Server stopped")
	s.limiter.Stop()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
