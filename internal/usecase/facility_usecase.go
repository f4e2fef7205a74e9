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

type FacilityUseCase struct {
	facilityRepo repository.FacilityRepository
	subtypeRepo  repository.SubtypeRepository
	cache        *TaxonomyCache
	logger       *zap.Logger
}

func NewFacilityUseCase(
	facilityRepo repository.FacilityRepository,
	subtypeRepo repository.SubtypeRepository,
	cache *TaxonomyCache,
	logger *zap.Logger,
) *FacilityUseCase {
	return &FacilityUseCase{
		facilityRepo: facilityRepo,
		subtypeRepo:  subtypeRepo,
		cache:        cache,
		logger:       logger,
	}
}

func (uc *FacilityUseCase) Create(ctx context.Context, req dto.CreateFacilityRequest) (*domain.Facility, error) {
	subtypes, err := uc.subtypeRepo.GetByIDs(ctx, req.SubtypeIDs)
	if err != nil {
		return nil, err
	}
	if len(subtypes) != len(req.SubtypeIDs) {
		found := make(map[int64]bool, len(subtypes))
		for _, s := range subtypes {
			found[s.ID] = true
		}
		var missing []int64
		for _, id := range req.SubtypeIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, errors.ErrSubtypeNotFound.
			WithMessage("One or more subtypes not found").
			WithDetails(map[string]interface{}{"missingSubtypeIds": missing})
	}

	// Удобства привязываются только к подтипам гостиничного типа.
	var offending []int64
	for _, s := range subtypes {
		if s.Type == nil || s.Type.Role != domain.RoleHospitality {
			offending = append(offending, s.ID)
		}
	}
	if len(offending) > 0 {
		return nil, errors.ErrInvalidRequest.
			WithMessage("Subtypes do not belong to a %s type", domain.RoleHospitality).
			WithDetails(map[string]interface{}{"invalidSubtypeIds": offending})
	}

	f := &domain.Facility{
		Name:        req.Name,
		Description: req.Description,
	}

	created, err := uc.facilityRepo.Create(ctx, f, req.SubtypeIDs)
	if err != nil {
		uc.logger.Error("Failed to create facility", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return uc.facilityRepo.GetByID(ctx, created.ID)
}

func (uc *FacilityUseCase) FindAll(ctx context.Context) ([]*domain.Facility, error) {
	key := taxonomyCachePrefix + "facilities"

	var cached []*domain.Facility
	if uc.cache.Load(ctx, key, &cached) {
		return cached, nil
	}

	facilities, err := uc.facilityRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(facilities) == 0 {
		return nil, errors.ErrNoContent
	}

	uc.cache.Store(ctx, key, facilities)
	return facilities, nil
}

func (uc *FacilityUseCase) FindOne(ctx context.Context, id int64) (*domain.Facility, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidID
	}

	key := fmt.Sprintf("%sfacility:%d", taxonomyCachePrefix, id)

	var cached domain.Facility
	if uc.cache.Load(ctx, key, &cached) {
		return &cached, nil
	}

	f, err := uc.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cache.Store(ctx, key, f)
	return f, nil
}

func (uc *FacilityUseCase) Update(ctx context.Context, id int64, req dto.UpdateFacilityRequest) (*domain.Facility, error) {
	f, err := uc.facilityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Description != nil {
		f.Description = *req.Description
	}

	if err := uc.facilityRepo.Update(ctx, f); err != nil {
		uc.logger.Error("Failed to update facility", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return uc.facilityRepo.GetByID(ctx, id)
}

func (uc *FacilityUseCase) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.ErrInvalidID
	}

	affected, err := uc.facilityRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrFacilityNotFound
	}

	uc.cache.Invalidate(ctx)
	return nil
}
