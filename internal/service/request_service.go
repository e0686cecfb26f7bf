package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
)

type RequestService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, logger: logger}
}

func (s *RequestService) AddRequest(ctx context.Context, publisherID int64, description string) (*models.ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, database.Validationf("request description is blank")
	}
	if _, err := s.repo.GetUser(ctx, publisherID); err != nil {
		return nil, err
	}

	request := &models.ItemRequest{Description: description, PublisherID: publisherID, Items: []models.Item{}}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("request_id", request.ID).Int64("publisher_id", publisherID).Msg("request created")
	return request, nil
}

func (s *RequestService) GetUserRequests(ctx context.Context, publisherID int64) ([]models.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, publisherID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetRequestsByPublisher(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, requests)
}

func (s *RequestService) GetOtherUsersRequests(ctx context.Context, callerID int64, page *models.PageRequest) ([]models.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, callerID); err != nil {
		return nil, err
	}
	requests, err := s.repo.GetRequestsByOthers(ctx, callerID, page)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, requests)
}

func (s *RequestService) GetRequest(ctx context.Context, callerID, requestID int64) (*models.ItemRequest, error) {
	if _, err := s.repo.GetUser(ctx, callerID); err != nil {
		return nil, err
	}
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, request)
}

// enrich resolves the items created in fulfillment of the request. The link is
// a reverse lookup on the item side, never a stored collection.
func (s *RequestService) enrich(ctx context.Context, request *models.ItemRequest) (*models.ItemRequest, error) {
	items, err := s.repo.GetItemsByRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	request.Items = items
	return request, nil
}

func (s *RequestService) enrichAll(ctx context.Context, requests []models.ItemRequest) ([]models.ItemRequest, error) {
	enriched := make([]models.ItemRequest, 0, len(requests))
	for i := range requests {
		r, err := s.enrich(ctx, &requests[i])
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, *r)
	}
	return enriched, nil
}
