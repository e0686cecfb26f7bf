package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server is the gateway process: it rate-limits callers, rejects requests
// that are invalid on their face and proxies the rest to the core server.
type Server struct {
	cfg     config.GatewayConfig
	client  *ServerClient
	limiter RateLimiter
	logger  *zerolog.Logger
	server  *http.Server
}

func NewServer(cfg config.GatewayConfig, client *ServerClient, limiter RateLimiter, logger *zerolog.Logger) *Server {
	srv := &Server{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		logger:  logger,
	}

	router := mux.NewRouter()
	router.Use(api.RequestIDMiddleware, api.LoggingMiddleware(logger), srv.rateLimitMiddleware)

	router.HandleFunc("/users", srv.withValidation(srv.validateNewUser)).Methods(http.MethodPost)
	router.HandleFunc("/users", srv.proxy).Methods(http.MethodGet)
	router.HandleFunc("/users/{userId}", srv.proxy).Methods(http.MethodGet, http.MethodDelete)
	router.HandleFunc("/users/{userId}", srv.withValidation(srv.validateUserPatch)).Methods(http.MethodPatch)

	router.HandleFunc("/items", srv.withValidation(srv.validateNewItem)).Methods(http.MethodPost)
	router.HandleFunc("/items", srv.withCaller(srv.validatePage)).Methods(http.MethodGet)
	router.HandleFunc("/items/search", srv.withValidation(srv.validatePage)).Methods(http.MethodGet)
	router.HandleFunc("/items/{itemId}", srv.withCaller(nil)).Methods(http.MethodGet, http.MethodPatch)
	router.HandleFunc("/items/{itemId}/comment", srv.withCaller(srv.validateComment)).Methods(http.MethodPost)

	router.HandleFunc("/bookings", srv.withCaller(srv.validateNewBooking)).Methods(http.MethodPost)
	router.HandleFunc("/bookings", srv.withCaller(srv.validateBookingList)).Methods(http.MethodGet)
	router.HandleFunc("/bookings/owner", srv.withCaller(srv.validateBookingList)).Methods(http.MethodGet)
	router.HandleFunc("/bookings/owner/export", srv.withCaller(srv.validateBookingList)).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{bookingId}", srv.withCaller(nil)).Methods(http.MethodGet, http.MethodPatch)

	router.HandleFunc("/requests", srv.withCaller(srv.validateNewRequest)).Methods(http.MethodPost)
	router.HandleFunc("/requests", srv.withCaller(nil)).Methods(http.MethodGet)
	router.HandleFunc("/requests/all", srv.withCaller(srv.validatePage)).Methods(http.MethodGet)
	router.HandleFunc("/requests/{requestId}", srv.withCaller(nil)).Methods(http.MethodGet)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
	}

	return srv
}

// Handler exposes the routing tree for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Str("server_url", s.cfg.ServerURL).Msg("gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// callerKey identifies the caller for rate limiting: the identity header when
// present, the remote address otherwise.
func callerKey(r *http.Request) string {
	if userID := r.Header.Get(models.HeaderUserID); userID != "" {
		return userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, err := s.limiter.Allow(r.Context(), callerKey(r))
		if err != nil {
			s.logger.Error().Err(err).Msg("rate limiter error")
			allowed = true
		}
		if !allowed {
			writeJSON(w, http.StatusTooManyRequests, api.ErrorResponse{
				Error:   http.StatusText(http.StatusTooManyRequests),
				Message: "rate limit exceeded",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withValidation runs validate over the buffered body, then proxies.
func (s *Server) withValidation(validate func(r *http.Request, body []byte) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			api.WriteError(w, s.logger, database.Validationf("failed to read request body"))
			return
		}

		if validate != nil {
			if err := validate(r, body); err != nil {
				api.WriteError(w, s.logger, err)
				return
			}
		}

		s.forward(w, r, body)
	}
}

// withCaller requires the identity header before validating and proxying.
func (s *Server) withCaller(validate func(r *http.Request, body []byte) error) http.HandlerFunc {
	return s.withValidation(func(r *http.Request, body []byte) error {
		if r.Header.Get(models.HeaderUserID) == "" {
			return database.Validationf("missing %s header", models.HeaderUserID)
		}
		if validate != nil {
			return validate(r, body)
		}
		return nil
	})
}

func (s *Server) proxy(w http.ResponseWriter, r *http.Request) {
	s.withValidation(nil)(w, r)
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request, body []byte) {
	resp, err := s.client.Forward(r.Context(), r, bytes.NewReader(body))
	if err != nil {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("upstream unavailable")
		writeJSON(w, http.StatusBadGateway, api.ErrorResponse{
			Error:   http.StatusText(http.StatusBadGateway),
			Message: "server unavailable",
		})
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		w.Header().Set("Content-Disposition", cd)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		s.logger.Error().Err(err).Msg("failed to relay response body")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
