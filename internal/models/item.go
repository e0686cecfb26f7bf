package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"-"`
	RequestID   int64     `json:"requestId,omitempty"` // originating request, 0 when listed directly
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// ItemPatch carries a partial update; nil fields are left untouched.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// ItemDetails is an item enriched for display: neighbouring bookings
// (owner-only) and all comments, newest first.
type ItemDetails struct {
	Item
	LastBooking *BookingLink `json:"lastBooking,omitempty"`
	NextBooking *BookingLink `json:"nextBooking,omitempty"`
	Comments    []Comment    `json:"comments"`
}

type Comment struct {
	ID       int64     `json:"id"`
	Text     string    `json:"text"`
	ItemID   int64     `json:"-"`
	AuthorID int64     `json:"-"`
	// AuthorName is denormalized from the users table on read.
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}
