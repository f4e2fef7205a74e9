package repository

import (
	"context"

	"github.com/city-tourism-backend/internal/domain"
)

// CityPointRepository определяет методы для работы с точками интереса
type CityPointRepository interface {
	// Create persists the point and its facility links in one
	// transaction.
	Create(ctx context.Context, p *domain.CityPoint, facilityIDs []int64) (*domain.CityPoint, error)

	// GetByID eagerly loads type, subtype and facilities. Soft-deleted
	// rows are only visible with IncludeDeleted or DeletedOnly.
	GetByID(ctx context.Context, id int64, mode domain.QueryMode) (*domain.CityPoint, error)

	// GetByName returns an active point with the exact name, nil when
	// absent. Used by the update path's uniqueness check.
	GetByName(ctx context.Context, name string) (*domain.CityPoint, error)

	// List returns the filtered page plus the total count before
	// pagination.
	List(ctx context.Context, filter domain.CityPointFilter) ([]*domain.CityPoint, int, error)

	// Update rewrites the mutable columns and, when facilityIDs is
	// non-nil, replaces the facility links.
	Update(ctx context.Context, p *domain.CityPoint, facilityIDs []int64) error

	// SoftDelete stamps deleted_at; returns affected row count.
	SoftDelete(ctx context.Context, id int64) (int64, error)

	// Restore clears deleted_at on a soft-deleted row; returns
	// affected row count.
	Restore(ctx context.Context, id int64) (int64, error)

	// ListImagePaths returns every image path referenced by any row,
	// deleted rows included. Used by upload reconciliation.
	ListImagePaths(ctx context.Context) ([]string, error)
}
