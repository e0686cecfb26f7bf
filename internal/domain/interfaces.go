package domain

import (
	"context"

	"shareit/internal/models"
)

// Repository is the persistence surface the services depend on. *database.DB
// implements it; tests may substitute fakes for single methods.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	EmailInUse(ctx context.Context, email string, excludeUserID int64) (bool, error)

	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	UpdateItem(ctx context.Context, item *models.Item) error
	SetItemAvailable(ctx context.Context, id int64, available bool) error
	GetItemsByOwner(ctx context.Context, ownerID int64, page *models.PageRequest) ([]models.Item, error)
	SearchItems(ctx context.Context, text string, page *models.PageRequest) ([]models.Item, error)
	GetItemsByRequest(ctx context.Context, requestID int64) ([]models.Item, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	GetBookingsByBooker(ctx context.Context, bookerID int64, state string, page *models.PageRequest) ([]models.Booking, error)
	GetBookingsByOwner(ctx context.Context, ownerID int64, state string, page *models.PageRequest) ([]models.Booking, error)
	GetLastBookingForItem(ctx context.Context, itemID int64) (*models.BookingLink, error)
	GetNextBookingForItem(ctx context.Context, itemID int64) (*models.BookingLink, error)
	HasPastBooking(ctx context.Context, userID, itemID int64) (bool, error)

	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByItem(ctx context.Context, itemID int64) ([]models.Comment, error)

	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByPublisher(ctx context.Context, publisherID int64) ([]models.ItemRequest, error)
	GetRequestsByOthers(ctx context.Context, excludeUserID int64, page *models.PageRequest) ([]models.ItemRequest, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type UserService interface {
	AddUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, userID int64, patch models.UserPatch) (*models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	CheckUserPresent(ctx context.Context, userID int64) error
}

type ItemService interface {
	AddItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.ItemDetails, error)
	GetItem(ctx context.Context, callerID, itemID int64) (*models.ItemDetails, error)
	GetUserItems(ctx context.Context, ownerID int64, page *models.PageRequest) ([]models.ItemDetails, error)
	Search(ctx context.Context, text string, page *models.PageRequest) ([]models.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, bookerID int64, req models.NewBookingRequest) (*models.Booking, error)
	SetStatus(ctx context.Context, callerID, bookingID int64, approved bool) (*models.Booking, error)
	GetBooking(ctx context.Context, callerID, bookingID int64) (*models.Booking, error)
	GetUserBookings(ctx context.Context, bookerID int64, state string, page *models.PageRequest) ([]models.Booking, error)
	GetOwnerBookings(ctx context.Context, ownerID int64, state string, page *models.PageRequest) ([]models.Booking, error)
}

type RequestService interface {
	AddRequest(ctx context.Context, publisherID int64, description string) (*models.ItemRequest, error)
	GetUserRequests(ctx context.Context, publisherID int64) ([]models.ItemRequest, error)
	GetOtherUsersRequests(ctx context.Context, callerID int64, page *models.PageRequest) ([]models.ItemRequest, error)
	GetRequest(ctx context.Context, callerID, requestID int64) (*models.ItemRequest, error)
}
