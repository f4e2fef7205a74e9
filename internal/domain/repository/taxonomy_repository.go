package repository

import (
	"context"

	"github.com/city-tourism-backend/internal/domain"
)

// TypeRepository определяет методы для работы с типами таксономии
type TypeRepository interface {
	Create(ctx context.Context, t *domain.TypeEntity) (*domain.TypeEntity, error)

	GetByID(ctx context.Context, id int64) (*domain.TypeEntity, error)

	// GetByRole возвращает тип с указанной уникальной ролью; nil when
	// no type holds the role.
	GetByRole(ctx context.Context, role domain.TypeRole) (*domain.TypeEntity, error)

	List(ctx context.Context) ([]*domain.TypeEntity, error)

	Update(ctx context.Context, t *domain.TypeEntity) error

	Delete(ctx context.Context, id int64) (int64, error)
}

// SubtypeRepository определяет методы для работы с подтипами
type SubtypeRepository interface {
	Create(ctx context.Context, s *domain.Subtype) (*domain.Subtype, error)

	// GetByID eagerly loads the parent type and attached facilities.
	GetByID(ctx context.Context, id int64) (*domain.Subtype, error)

	GetByName(ctx context.Context, name string) (*domain.Subtype, error)

	// GetByIDs returns the subset of subtypes that exist, parent type
	// included, preserving no particular order.
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Subtype, error)

	List(ctx context.Context, typeID int64, sortField, sortOrder string, limit int) ([]*domain.Subtype, error)

	Update(ctx context.Context, s *domain.Subtype) error

	Delete(ctx context.Context, id int64) (int64, error)
}

// FacilityRepository определяет методы для работы с инсталляциями
type FacilityRepository interface {
	// Create persists the facility and links it to the given subtypes
	// in one transaction.
	Create(ctx context.Context, f *domain.Facility, subtypeIDs []int64) (*domain.Facility, error)

	GetByID(ctx context.Context, id int64) (*domain.Facility, error)

	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Facility, error)

	// ListBySubtype returns the facilities linked to a subtype.
	ListBySubtype(ctx context.Context, subtypeID int64) ([]*domain.Facility, error)

	List(ctx context.Context) ([]*domain.Facility, error)

	Update(ctx context.Context, f *domain.Facility) error

	Delete(ctx context.Context, id int64) (int64, error)
}
