package service

import (
	"shareit/internal/database"
	"shareit/internal/models"
)

// NewPageRequest validates the from/size pair of the paginated endpoints.
func NewPageRequest(from, size int) (*models.PageRequest, error) {
	if from < 0 {
		return nil, database.Validationf("from value can not be negative")
	}
	if size < 1 {
		return nil, database.Validationf("size is too small")
	}
	return &models.PageRequest{From: from, Size: size}, nil
}
