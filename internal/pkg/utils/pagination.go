package utils

import (
	"fmt"

	"github.com/city-tourism-backend/internal/pkg/errors"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// NormalizePagination applies the 10/page-1 defaults and rejects
// negative values before any query runs. Zero means the caller did
// not supply a value; handlers reject an explicit zero up front.
func NormalizePagination(limit, page int) (int, int, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if page == 0 {
		page = DefaultPage
	}
	if limit < 0 || page < 0 {
		return 0, 0, errors.ErrInvalidPagination
	}
	return limit, page, nil
}

// BuildPageLinks synthesizes previous/next URLs from the current
// filter window: previous exists iff page > 1, next iff page*limit < total.
func BuildPageLinks(basePath string, limit, page, total int) *PageLinks {
	links := &PageLinks{}
	if page > 1 {
		prev := fmt.Sprintf("%s?limit=%d&page=%d", basePath, limit, page-1)
		links.Previous = &prev
	}
	if page*limit < total {
		next := fmt.Sprintf("%s?limit=%d&page=%d", basePath, limit, page+1)
		links.Next = &next
	}
	return links
}
