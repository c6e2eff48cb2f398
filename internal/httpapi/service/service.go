package service

import (
	"errors"

	"reviewhub/internal/httpapi/apierrors"

	"gorm.io/gorm"
)

// Pagination bounds applied to every list endpoint.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// asNotFound rewrites a gorm record miss into the API-level sentinel so
// handlers never see persistence errors.
func asNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apierrors.ErrNotFound
	}
	return err
}
