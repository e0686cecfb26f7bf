package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"
)

type BookingService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, eventBus: eventBus, logger: logger}
}

func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, req models.NewBookingRequest) (*models.Booking, error) {
	booker, err := s.repo.GetUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, database.Validationf("item is not available for this rental time")
	}
	if item.OwnerID == bookerID {
		return nil, database.Validationf("owner can not book own item")
	}
	if err := validateRentalTimes(req.Start, req.End); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Start:  req.Start,
		End:    req.End,
		Status: models.StatusWaiting,
		Booker: models.UserRef{ID: booker.ID, Name: booker.Name},
		Item:   models.BookedItem{ID: item.ID, Name: item.Name, OwnerID: item.OwnerID},
	}
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	// A booked item stops showing up as available until the owner relists it.
	if err := s.repo.SetItemAvailable(ctx, item.ID, false); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, booking)
	s.logger.Debug().Int64("booking_id", booking.ID).Int64("item_id", item.ID).Msg("booking created")
	return booking, nil
}

func (s *BookingService) SetStatus(ctx context.Context, callerID, bookingID int64, approved bool) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Item.OwnerID != callerID {
		return nil, database.Validationf("user with id %d is not owner of this item", callerID)
	}
	if (approved && booking.Status != models.StatusWaiting) ||
		(!approved && booking.Status == models.StatusRejected) {
		return nil, database.Validationf("Booking already has this status.")
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}
	if err := s.repo.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.publishEvent(eventType, booking)
	s.logger.Debug().Int64("booking_id", bookingID).Str("status", status).Msg("booking decided")
	return booking, nil
}

// GetBooking is restricted to the booker and the item owner; for anyone else
// the booking is reported as absent.
func (s *BookingService) GetBooking(ctx context.Context, callerID, bookingID int64) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Booker.ID != callerID && booking.Item.OwnerID != callerID {
		return nil, database.NotFoundf("user with id %d is not booker or owner of this item", callerID)
	}
	return booking, nil
}

func (s *BookingService) GetUserBookings(ctx context.Context, bookerID int64, state string, page *models.PageRequest) ([]models.Booking, error) {
	if _, err := s.repo.GetUser(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.repo.GetBookingsByBooker(ctx, bookerID, state, page)
}

func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID int64, state string, page *models.PageRequest) ([]models.Booking, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.GetBookingsByOwner(ctx, ownerID, state, page)
}

func validateRentalTimes(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return database.Validationf("incorrect rental time information")
	}
	now := time.Now()
	if start.Before(now) {
		return database.Validationf("rental start time in past")
	}
	if end.Before(now) {
		return database.Validationf("rental end time in past")
	}
	if end.Equal(start) {
		return database.Validationf("rental timelines equals")
	}
	if start.After(end) {
		return database.Validationf("rental end time is before rental start time")
	}
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		BookerID:  booking.Booker.ID,
		ItemID:    booking.Item.ID,
		ItemName:  booking.Item.Name,
		OwnerID:   booking.Item.OwnerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
