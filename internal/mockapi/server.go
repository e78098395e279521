// Package mockapi is an in-memory stand-in for the marketplace backend.
// It serves the same routes and envelopes under /api/v1 and is used by
// the end-to-end tests and the mock-api command.
package mockapi

import (
	"encoding/json"
	"net/http"
	"scout-client/internal/domain"
	"scout-client/internal/middleware"
	"sync"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

const BasePath = "/api/v1"

type account struct {
	user         domain.User
	passwordHash []byte
}

type refreshEntry struct {
	userID    string
	expiresAt time.Time
}

type Server struct {
	mu           sync.RWMutex
	accounts     map[string]*account // by email
	usersByID    map[string]*account
	refresh      map[string]refreshEntry
	generation   int
	players      []domain.Player
	academies    []domain.Academy
	subs         map[string]*domain.Subscription
	saved        map[string][]string
	contacts     map[string][]domain.ContactRequest
	secret       []byte
	accessTTL    time.Duration
	refreshTTL   time.Duration
	checkoutBase string

	logger zerolog.Logger
}

type Options struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	// CheckoutBase prefixes the fake payment URLs.
	CheckoutBase string
}

func New(opts Options, logger zerolog.Logger) *Server {
	if opts.CheckoutBase == "" {
		opts.CheckoutBase = "https://checkout.example.com/pay/"
	}
	return &Server{
		accounts:     make(map[string]*account),
		usersByID:    make(map[string]*account),
		refresh:      make(map[string]refreshEntry),
		subs:         make(map[string]*domain.Subscription),
		saved:        make(map[string][]string),
		contacts:     make(map[string][]domain.ContactRequest),
		secret:       []byte(opts.JWTSecret),
		accessTTL:    opts.AccessTTL,
		refreshTTL:   opts.RefreshTTL,
		checkoutBase: opts.CheckoutBase,
		logger:       logger,
	}
}

// Handler returns the routes wrapped in request-id, recovery and CORS
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST "+BasePath+"/auth/login", s.handleLogin)
	mux.HandleFunc("POST "+BasePath+"/auth/register", s.handleRegister)
	mux.HandleFunc("POST "+BasePath+"/auth/refresh", s.handleRefresh)
	mux.HandleFunc("POST "+BasePath+"/auth/forgot-password", s.handleForgotPassword)
	mux.Handle("POST "+BasePath+"/auth/logout", s.authenticated(s.handleLogout))
	mux.Handle("GET "+BasePath+"/auth/me", s.authenticated(s.handleMe))

	mux.Handle("GET "+BasePath+"/players", s.authenticated(s.handleListPlayers))
	mux.Handle("GET "+BasePath+"/players/{id}", s.authenticated(s.handleGetPlayer))

	mux.Handle("POST "+BasePath+"/admin/players", s.admin(s.handleCreatePlayer))
	mux.Handle("PUT "+BasePath+"/admin/players/{id}", s.admin(s.handleUpdatePlayer))
	mux.Handle("DELETE "+BasePath+"/admin/players/{id}", s.admin(s.handleDeletePlayer))
	mux.Handle("POST "+BasePath+"/admin/players/{id}/verify", s.admin(s.handleVerifyPlayer))

	mux.Handle("GET "+BasePath+"/admin/academies", s.admin(s.handleListAcademies))
	mux.Handle("GET "+BasePath+"/admin/academies/{id}", s.admin(s.handleGetAcademy))
	mux.Handle("POST "+BasePath+"/admin/academies", s.admin(s.handleCreateAcademy))
	mux.Handle("PUT "+BasePath+"/admin/academies/{id}", s.admin(s.handleUpdateAcademy))
	mux.Handle("DELETE "+BasePath+"/admin/academies/{id}", s.admin(s.handleDeleteAcademy))

	mux.HandleFunc("GET "+BasePath+"/subscriptions/plans", s.handlePlans)
	mux.Handle("GET "+BasePath+"/subscriptions/me", s.authenticated(s.handleMySubscription))
	mux.Handle("POST "+BasePath+"/subscriptions/checkout", s.authenticated(s.handleCheckout))
	mux.Handle("POST "+BasePath+"/subscriptions/cancel", s.authenticated(s.handleCancel))

	mux.Handle("GET "+BasePath+"/users/me/saved-players", s.authenticated(s.handleSavedPlayers))
	mux.Handle("POST "+BasePath+"/users/me/saved-players", s.authenticated(s.handleSavePlayer))
	mux.Handle("DELETE "+BasePath+"/users/me/saved-players/{id}", s.authenticated(s.handleRemoveSavedPlayer))
	mux.Handle("GET "+BasePath+"/users/me/contacts", s.authenticated(s.handleContacts))
	mux.Handle("POST "+BasePath+"/contacts", s.authenticated(s.handleRequestContact))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.RequestID(s.logger)(middleware.Recover(s.logger)(c.Handler(mux)))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": message})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": "Validation failed",
		"errors":  fields,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON body")
		return false
	}
	return true
}
