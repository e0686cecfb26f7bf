package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"shareit/internal/config"
	"shareit/internal/domain"
)

// HTTPServer is the core REST surface: controllers over the domain services.
type HTTPServer struct {
	cfg      config.ServerConfig
	users    domain.UserService
	items    domain.ItemService
	bookings domain.BookingService
	requests domain.RequestService
	logger   *zerolog.Logger
	server   *http.Server
}

func NewHTTPServer(
	cfg config.ServerConfig,
	users domain.UserService,
	items domain.ItemService,
	bookings domain.BookingService,
	requests domain.RequestService,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		logger:   logger,
	}

	router := mux.NewRouter()
	router.Use(RequestIDMiddleware, LoggingMiddleware(logger))

	router.HandleFunc("/users", srv.handleAddUser).Methods(http.MethodPost)
	router.HandleFunc("/users", srv.handleGetAllUsers).Methods(http.MethodGet)
	router.HandleFunc("/users/{userId}", srv.handleGetUser).Methods(http.MethodGet)
	router.HandleFunc("/users/{userId}", srv.handleUpdateUser).Methods(http.MethodPatch)
	router.HandleFunc("/users/{userId}", srv.handleDeleteUser).Methods(http.MethodDelete)

	router.HandleFunc("/items", srv.handleAddItem).Methods(http.MethodPost)
	router.HandleFunc("/items", srv.handleGetUserItems).Methods(http.MethodGet)
	router.HandleFunc("/items/search", srv.handleSearchItems).Methods(http.MethodGet)
	router.HandleFunc("/items/{itemId}", srv.handleGetItem).Methods(http.MethodGet)
	router.HandleFunc("/items/{itemId}", srv.handleUpdateItem).Methods(http.MethodPatch)
	router.HandleFunc("/items/{itemId}/comment", srv.handleAddComment).Methods(http.MethodPost)

	router.HandleFunc("/bookings", srv.handleCreateBooking).Methods(http.MethodPost)
	router.HandleFunc("/bookings", srv.handleGetUserBookings).Methods(http.MethodGet)
	router.HandleFunc("/bookings/owner", srv.handleGetOwnerBookings).Methods(http.MethodGet)
	router.HandleFunc("/bookings/owner/export", srv.handleExportOwnerBookings).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{bookingId}", srv.handleGetBooking).Methods(http.MethodGet)
	router.HandleFunc("/bookings/{bookingId}", srv.handleSetBookingStatus).Methods(http.MethodPatch)

	router.HandleFunc("/requests", srv.handleAddRequest).Methods(http.MethodPost)
	router.HandleFunc("/requests", srv.handleGetUserRequests).Methods(http.MethodGet)
	router.HandleFunc("/requests/all", srv.handleGetOtherUsersRequests).Methods(http.MethodGet)
	router.HandleFunc("/requests/{requestId}", srv.handleGetRequest).Methods(http.MethodGet)

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler exposes the routing tree for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("REST API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
