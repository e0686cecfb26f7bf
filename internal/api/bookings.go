package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"shareit/internal/database"
	"shareit/internal/models"
	"shareit/internal/report"
	"shareit/internal/service"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	var req models.NewBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, s.logger, database.Validationf("invalid request body"))
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), bookerID, req)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleSetBookingStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	bookingID, err := pathID(r, mux.Vars(r), "bookingId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		WriteError(w, s.logger, database.Validationf("invalid approved value: %s", r.URL.Query().Get("approved")))
		return
	}

	booking, err := s.bookings.SetStatus(r.Context(), caller, bookingID, approved)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	bookingID, err := pathID(r, mux.Vars(r), "bookingId")
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), caller, bookingID)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetUserBookings(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	state, page, err := bookingListParams(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	bookings, err := s.bookings.GetUserBookings(r.Context(), bookerID, state, page)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleGetOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	state, page, err := bookingListParams(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	bookings, err := s.bookings.GetOwnerBookings(r.Context(), ownerID, state, page)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// handleExportOwnerBookings streams the owner's bookings as an xlsx workbook.
func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, err := callerID(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	state, page, err := bookingListParams(r)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	bookings, err := s.bookings.GetOwnerBookings(r.Context(), ownerID, state, page)
	if err != nil {
		WriteError(w, s.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := report.WriteOwnerBookings(w, bookings); err != nil {
		s.logger.Error().Err(err).Msg("failed to write bookings export")
	}
}

func bookingListParams(r *http.Request) (string, *models.PageRequest, error) {
	state, err := service.ParseBookingState(r.URL.Query().Get("state"))
	if err != nil {
		return "", nil, err
	}
	page, err := pageFromQuery(r)
	if err != nil {
		return "", nil, err
	}
	return state, page, nil
}
