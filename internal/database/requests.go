package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (description, publisher_id, created_at) VALUES (?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query, request.Description, request.PublisherID, now)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	request.Created = now
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	var r models.ItemRequest
	query := `SELECT id, description, publisher_id, created_at FROM requests WHERE id = ?`
	err := db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.Description, &r.PublisherID, &r.Created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFoundf("request with id %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return &r, nil
}

// GetRequestsByPublisher returns the user's own requests, newest first.
func (db *DB) GetRequestsByPublisher(ctx context.Context, publisherID int64) ([]models.ItemRequest, error) {
	query := `SELECT id, description, publisher_id, created_at FROM requests
              WHERE publisher_id = ? ORDER BY created_at DESC, id DESC`
	return db.queryRequests(ctx, query, publisherID)
}

// GetRequestsByOthers returns requests published by anyone except the user,
// newest first, optionally paginated.
func (db *DB) GetRequestsByOthers(ctx context.Context, excludeUserID int64, page *models.PageRequest) ([]models.ItemRequest, error) {
	query := `SELECT id, description, publisher_id, created_at FROM requests
              WHERE publisher_id != ? ORDER BY created_at DESC, id DESC`
	args := []any{excludeUserID}
	if page != nil {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, page.Limit(), page.Offset())
	}
	return db.queryRequests(ctx, query, args...)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ItemRequest
	for rows.Next() {
		var r models.ItemRequest
		if err := rows.Scan(&r.ID, &r.Description, &r.PublisherID, &r.Created); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}
