package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/groupspace/groupspace/internal/config"
	"github.com/groupspace/groupspace/internal/database"
	"github.com/groupspace/groupspace/internal/stats"
)

type GroupSpaceApp struct {
	log            *log.Logger
	db             database.GroupSpaceRepository
	mux            *http.Server
	stats          stats.StatsProvider
	signingKey     []byte
	allowedOrigins []string
}

func NewGroupSpaceApp(mux *http.ServeMux, logger *log.Logger, db database.GroupSpaceRepository, su stats.StatsProvider, cfg *config.Config) *GroupSpaceApp {
	s := &GroupSpaceApp{
		log:            logger,
		db:             db,
		stats:          su,
		signingKey:     cfg.SigningKey,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("GET /healthz", s.healthCheck)

	mux.HandleFunc("GET /users", s.listUsers)
	mux.HandleFunc("POST /users", s.createUser)
	mux.HandleFunc("POST /users/login", s.login)
	mux.HandleFunc("POST /users/logout", s.logout)
	mux.HandleFunc("GET /users/session", s.session)
	mux.HandleFunc("GET /users/search", s.searchUsers)
	mux.HandleFunc("PUT /users/{id}", s.updateUser)
	mux.HandleFunc("DELETE /users/{id}", s.deleteUser)

	mux.HandleFunc("GET /messages", s.listConversation)
	mux.HandleFunc("POST /messages", s.sendMessage)

	mux.HandleFunc("GET /groups", s.listGroups)
	mux.HandleFunc("POST /groups", s.createGroup)
	mux.HandleFunc("GET /groups/{id}/messages", s.listGroupMessages)
	mux.HandleFunc("POST /groups/{id}/messages", s.sendGroupMessage)
	mux.HandleFunc("GET /groups/{id}/members", s.listGroupMembers)
	mux.HandleFunc("POST /groups/{id}/members", s.addGroupMember)
	mux.HandleFunc("DELETE /groups/{id}/members/{uid}", s.removeGroupMember)

	mux.HandleFunc("GET /events", s.listUserEvents)
	mux.HandleFunc("GET /groups/{id}/events", s.listGroupEvents)
	mux.HandleFunc("POST /groups/{id}/events", s.createEvent)
	mux.HandleFunc("GET /events/{id}/participants", s.listEventParticipants)
	mux.HandleFunc("PUT /events/{id}/status", s.updateParticipantStatus)
	mux.HandleFunc("DELETE /events/{id}", s.deleteEvent)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = s.requestLogger(h)
	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *GroupSpaceApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *GroupSpaceApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

func (s *GroupSpaceApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *GroupSpaceApp) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := s.db.Ping(); err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
