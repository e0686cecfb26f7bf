package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/models"
)

type testEnv struct {
	db       *database.DB
	bus      *events.EventBus
	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewEventBus()
	return &testEnv{
		db:       db,
		bus:      bus,
		users:    NewUserService(db, &logger),
		items:    NewItemService(db, &logger),
		bookings: NewBookingService(db, bus, &logger),
		requests: NewRequestService(db, &logger),
	}
}

func (e *testEnv) addUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user, err := e.users.AddUser(context.Background(), &models.User{Name: name, Email: email})
	require.NoError(t, err)
	return user
}

func (e *testEnv) addItem(t *testing.T, ownerID int64, name string) *models.Item {
	t.Helper()
	item, err := e.items.AddItem(context.Background(), ownerID, &models.Item{
		Name:        name,
		Description: name + " description",
		Available:   true,
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) book(t *testing.T, bookerID, itemID int64, start, end time.Time) *models.Booking {
	t.Helper()
	booking, err := e.bookings.CreateBooking(context.Background(), bookerID, models.NewBookingRequest{
		ItemID: itemID,
		Start:  start,
		End:    end,
	})
	require.NoError(t, err)
	return booking
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
