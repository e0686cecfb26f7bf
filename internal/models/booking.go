package models

import "time"

type Booking struct {
	ID        int64      `json:"id"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Status    string     `json:"status"` // WAITING, APPROVED, REJECTED
	Booker    UserRef    `json:"booker"`
	Item      BookedItem `json:"item"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookedItem is the item slice of a booking response. OwnerID is kept for
// permission checks but never serialized.
type BookedItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"-"`
}

// BookingLink is the compact last/next booking reference embedded in item reads.
type BookingLink struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// NewBookingRequest is the creation payload: the booker comes from the caller
// header, the status is always WAITING.
type NewBookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}
