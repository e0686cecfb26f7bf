package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
)

type ItemService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewItemService(repo domain.Repository, logger *zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger}
}

func (s *ItemService) AddItem(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, database.Validationf("item name is blank")
	}
	if strings.TrimSpace(item.Description) == "" {
		return nil, database.Validationf("item description is blank")
	}
	// Listing an item that is unavailable from the start is rejected.
	if !item.Available {
		return nil, database.Validationf("item must be available at creation")
	}

	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if item.RequestID != 0 {
		if _, err := s.repo.GetRequest(ctx, item.RequestID); err != nil {
			return nil, err
		}
	}

	item.OwnerID = ownerID
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("item_id", item.ID).Int64("owner_id", ownerID).Msg("item created")
	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, ownerID, itemID int64, patch models.ItemPatch) (*models.ItemDetails, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// A foreign item is reported as absent rather than forbidden.
	if item.OwnerID != ownerID {
		return nil, database.NotFoundf("information about this user's item absent")
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("item_id", itemID).Msg("item updated")
	return s.GetItem(ctx, ownerID, itemID)
}

// GetItem returns the item with comments, plus the neighbouring bookings when
// the caller owns it.
func (s *ItemService) GetItem(ctx context.Context, callerID, itemID int64) (*models.ItemDetails, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, *item, callerID)
}

func (s *ItemService) GetUserItems(ctx context.Context, ownerID int64, page *models.PageRequest) ([]models.ItemDetails, error) {
	if _, err := s.repo.GetUser(ctx, ownerID); err != nil {
		return nil, err
	}
	items, err := s.repo.GetItemsByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	details := make([]models.ItemDetails, 0, len(items))
	for _, item := range items {
		d, err := s.enrich(ctx, item, ownerID)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (s *ItemService) Search(ctx context.Context, text string, page *models.PageRequest) ([]models.Item, error) {
	// Blank search text means an empty result, not "match everything".
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	items, err := s.repo.SearchItems(ctx, text, page)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, database.Validationf("comment text is blank")
	}
	author, err := s.repo.GetUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	rented, err := s.repo.HasPastBooking(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}
	if !rented {
		return nil, database.Validationf("user %d did not rent item %d", authorID, itemID)
	}

	comment := &models.Comment{Text: text, ItemID: itemID, AuthorID: authorID, AuthorName: author.Name}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("item_id", itemID).Int64("author_id", authorID).Msg("comment added")
	return comment, nil
}

func (s *ItemService) enrich(ctx context.Context, item models.Item, callerID int64) (*models.ItemDetails, error) {
	details := &models.ItemDetails{Item: item}

	comments, err := s.repo.GetCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	details.Comments = comments

	// Booking neighbours are owner-only display data.
	if callerID != item.OwnerID {
		return details, nil
	}
	if details.LastBooking, err = s.repo.GetLastBookingForItem(ctx, item.ID); err != nil {
		return nil, err
	}
	if details.NextBooking, err = s.repo.GetNextBookingForItem(ctx, item.ID); err != nil {
		return nil, err
	}
	return details, nil
}
