package models

import "time"

// ItemRequest is a user's posted need for an item that does not exist yet.
// Fulfilling items are resolved by reverse lookup on Item.RequestID.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	PublisherID int64     `json:"-"`
	Created     time.Time `json:"created"`
	Items       []Item    `json:"items"`
}
