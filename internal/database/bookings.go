package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingSelect = `SELECT b.id, b.start_date, b.end_date, b.status, b.created_at, b.updated_at,
       u.id, u.name, i.id, i.name, i.owner_id
FROM bookings b
JOIN users u ON u.id = b.booker_id
JOIN items i ON i.id = b.item_id`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var startStr, endStr string
	err := row.Scan(
		&b.ID, &startStr, &endStr, &b.Status, &b.CreatedAt, &b.UpdatedAt,
		&b.Booker.ID, &b.Booker.Name, &b.Item.ID, &b.Item.Name, &b.Item.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	if b.Start, err = parseStoredTime(startStr); err != nil {
		return nil, err
	}
	if b.End, err = parseStoredTime(endStr); err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (booker_id, item_id, start_date, end_date, status, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		booking.Booker.ID, booking.Item.ID,
		formatTime(booking.Start), formatTime(booking.End),
		booking.Status, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := scanBooking(db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundf("booking with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ?, updated_at = ? WHERE id = ?`
	if _, err := db.ExecContext(ctx, query, status, time.Now(), id); err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return nil
}

// stateClause maps a booking state filter to its SQL predicate. The time
// placeholders expect the formatted "now" argument once per occurrence.
func stateClause(state string) (clause string, nowArgs int, ok bool) {
	switch state {
	case "ALL":
		return ``, 0, true
	case "CURRENT":
		return ` AND b.start_date <= ? AND b.end_date > ?`, 2, true
	case "PAST":
		return ` AND b.end_date < ?`, 1, true
	case "FUTURE":
		return ` AND b.start_date > ?`, 1, true
	case "WAITING":
		return ` AND b.status = 'WAITING'`, 0, true
	case "REJECTED":
		return ` AND b.status = 'REJECTED'`, 0, true
	default:
		return ``, 0, false
	}
}

// GetBookingsByBooker lists the user's bookings filtered by state, newest start
// first. GetBookingsByOwner does the same for bookings against the user's items.
func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64, state string, page *models.PageRequest) ([]models.Booking, error) {
	return db.listBookings(ctx, `b.booker_id = ?`, bookerID, state, page)
}

func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64, state string, page *models.PageRequest) ([]models.Booking, error) {
	return db.listBookings(ctx, `i.owner_id = ?`, ownerID, state, page)
}

func (db *DB) listBookings(ctx context.Context, whoClause string, whoID int64, state string, page *models.PageRequest) ([]models.Booking, error) {
	clause, nowArgs, ok := stateClause(state)
	if !ok {
		return nil, UnknownStatef("Unknown state: %s", state)
	}

	query := bookingSelect + ` WHERE ` + whoClause + clause + ` ORDER BY b.start_date DESC`
	args := []any{whoID}
	now := formatTime(time.Now())
	for i := 0; i < nowArgs; i++ {
		args = append(args, now)
	}
	if page != nil {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Limit(), page.Offset())
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// GetLastBookingForItem returns the most recent booking already started, or nil.
func (db *DB) GetLastBookingForItem(ctx context.Context, itemID int64) (*models.BookingLink, error) {
	query := `SELECT id, booker_id, start_date, end_date FROM bookings
              WHERE item_id = ? AND start_date <= ?
              ORDER BY start_date DESC LIMIT 1`
	return db.queryBookingLink(ctx, query, itemID, formatTime(time.Now()))
}

// GetNextBookingForItem returns the nearest future approved booking, or nil.
func (db *DB) GetNextBookingForItem(ctx context.Context, itemID int64) (*models.BookingLink, error) {
	query := `SELECT id, booker_id, start_date, end_date FROM bookings
              WHERE item_id = ? AND start_date > ? AND status = 'APPROVED'
              ORDER BY start_date ASC LIMIT 1`
	return db.queryBookingLink(ctx, query, itemID, formatTime(time.Now()))
}

func (db *DB) queryBookingLink(ctx context.Context, query string, args ...any) (*models.BookingLink, error) {
	var link models.BookingLink
	var startStr, endStr string
	err := db.QueryRowContext(ctx, query, args...).Scan(&link.ID, &link.BookerID, &startStr, &endStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query booking link: %w", err)
	}
	if link.Start, err = parseStoredTime(startStr); err != nil {
		return nil, err
	}
	if link.End, err = parseStoredTime(endStr); err != nil {
		return nil, err
	}
	return &link, nil
}

// HasPastBooking reports whether the user has a started, non-rejected booking of
// the item. It gates comment creation.
func (db *DB) HasPastBooking(ctx context.Context, userID, itemID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE booker_id = ? AND item_id = ? AND start_date <= ? AND status != 'REJECTED'`
	var count int
	err := db.QueryRowContext(ctx, query, userID, itemID, formatTime(time.Now())).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check past bookings: %w", err)
	}
	return count > 0, nil
}
