package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

type SubtypeUseCase struct {
	subtypeRepo repository.SubtypeRepository
	typeRepo    repository.TypeRepository
	cache       *TaxonomyCache
	logger      *zap.Logger
}

func NewSubtypeUseCase(
	subtypeRepo repository.SubtypeRepository,
	typeRepo repository.TypeRepository,
	cache *TaxonomyCache,
	logger *zap.Logger,
) *SubtypeUseCase {
	return &SubtypeUseCase{
		subtypeRepo: subtypeRepo,
		typeRepo:    typeRepo,
		cache:       cache,
		logger:      logger,
	}
}

func (uc *SubtypeUseCase) Create(ctx context.Context, req dto.CreateSubtypeRequest) (*domain.Subtype, error) {
	if _, err := uc.typeRepo.GetByID(ctx, req.TypeID); err != nil {
		return nil, err
	}

	existing, err := uc.subtypeRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrNameConflict.WithMessage("A subtype with the name %q already exists", req.Name)
	}

	s := &domain.Subtype{
		Name:        req.Name,
		Description: req.Description,
		TypeID:      req.TypeID,
	}

	created, err := uc.subtypeRepo.Create(ctx, s)
	if err != nil {
		uc.logger.Error("Failed to create subtype", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return uc.subtypeRepo.GetByID(ctx, created.ID)
}

func (uc *SubtypeUseCase) FindAll(ctx context.Context, req dto.ListSubtypesRequest) ([]*domain.Subtype, error) {
	key := fmt.Sprintf("%ssubtypes:%d:%s:%s:%d",
		taxonomyCachePrefix, req.TypeID, req.SortField, req.SortOrder, req.Limit)

	var cached []*domain.Subtype
	if uc.cache.Load(ctx, key, &cached) {
		return cached, nil
	}

	subtypes, err := uc.subtypeRepo.List(ctx, req.TypeID, req.SortField, req.SortOrder, req.Limit)
	if err != nil {
		return nil, err
	}
	if len(subtypes) == 0 {
		return nil, errors.ErrNoContent
	}

	uc.cache.Store(ctx, key, subtypes)
	return subtypes, nil
}

func (uc *SubtypeUseCase) FindOne(ctx context.Context, id int64) (*domain.Subtype, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidID
	}

	key := fmt.Sprintf("%ssubtype:%d", taxonomyCachePrefix, id)

	var cached domain.Subtype
	if uc.cache.Load(ctx, key, &cached) {
		return &cached, nil
	}

	s, err := uc.subtypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cache.Store(ctx, key, s)
	return s, nil
}

func (uc *SubtypeUseCase) Update(ctx context.Context, id int64, req dto.UpdateSubtypeRequest) (*domain.Subtype, error) {
	s, err := uc.subtypeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != s.Name {
		existing, err := uc.subtypeRepo.GetByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != s.ID {
			return nil, errors.ErrNameConflict.WithMessage("A subtype with the name %q already exists", *req.Name)
		}
		s.Name = *req.Name
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.TypeID != nil {
		if _, err := uc.typeRepo.GetByID(ctx, *req.TypeID); err != nil {
			return nil, err
		}
		s.TypeID = *req.TypeID
	}

	if err := uc.subtypeRepo.Update(ctx, s); err != nil {
		uc.logger.Error("Failed to update subtype", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return uc.subtypeRepo.GetByID(ctx, id)
}

func (uc *SubtypeUseCase) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.ErrInvalidID
	}

	affected, err := uc.subtypeRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrSubtypeNotFound
	}

	uc.cache.Invalidate(ctx)
	return nil
}
