package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

// taxonomyCachePrefix covers types, subtypes and facilities; any
// mutation invalidates the whole namespace.
const taxonomyCachePrefix = "taxonomy:"

type TypeUseCase struct {
	typeRepo repository.TypeRepository
	cache    *TaxonomyCache
	logger   *zap.Logger
}

func NewTypeUseCase(typeRepo repository.TypeRepository, cache *TaxonomyCache, logger *zap.Logger) *TypeUseCase {
	return &TypeUseCase{
		typeRepo: typeRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (uc *TypeUseCase) Create(ctx context.Context, req dto.CreateTypeRequest) (*domain.TypeEntity, error) {
	role := domain.TypeRole(req.Role)

	// Одна роль — один тип.
	existing, err := uc.typeRepo.GetByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrRoleConflict.WithMessage("A type with role %s already exists", role)
	}

	t := &domain.TypeEntity{
		Name:        req.Name,
		Description: req.Description,
		Role:        role,
	}

	created, err := uc.typeRepo.Create(ctx, t)
	if err != nil {
		uc.logger.Error("Failed to create type", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return created, nil
}

func (uc *TypeUseCase) FindAll(ctx context.Context) ([]*domain.TypeEntity, error) {
	key := taxonomyCachePrefix + "types"

	var cached []*domain.TypeEntity
	if uc.cache.Load(ctx, key, &cached) {
		return cached, nil
	}

	types, err := uc.typeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, errors.ErrNoContent
	}

	uc.cache.Store(ctx, key, types)
	return types, nil
}

func (uc *TypeUseCase) FindOne(ctx context.Context, id int64) (*domain.TypeEntity, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidID
	}

	key := fmt.Sprintf("%stype:%d", taxonomyCachePrefix, id)

	var cached domain.TypeEntity
	if uc.cache.Load(ctx, key, &cached) {
		return &cached, nil
	}

	t, err := uc.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cache.Store(ctx, key, t)
	return t, nil
}

func (uc *TypeUseCase) Update(ctx context.Context, id int64, req dto.UpdateTypeRequest) (*domain.TypeEntity, error) {
	t, err := uc.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Role != nil && domain.TypeRole(*req.Role) != t.Role {
		role := domain.TypeRole(*req.Role)
		existing, err := uc.typeRepo.GetByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != t.ID {
			return nil, errors.ErrRoleConflict.WithMessage("A type with role %s already exists", role)
		}
		t.Role = role
	}

	if err := uc.typeRepo.Update(ctx, t); err != nil {
		uc.logger.Error("Failed to update type", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return t, nil
}

func (uc *TypeUseCase) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.ErrInvalidID
	}

	affected, err := uc.typeRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrTypeNotFound
	}

	uc.cache.Invalidate(ctx)
	return nil
}

// TaxonomyCache is a thin JSON layer over the cache repository shared
// by the three taxonomy usecases. Cache failures are logged and
// treated as misses.
type TaxonomyCache struct {
	repo   repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

func NewTaxonomyCache(repo repository.CacheRepository, ttl time.Duration, logger *zap.Logger) *TaxonomyCache {
	return &TaxonomyCache{repo: repo, ttl: ttl, logger: logger}
}

func (c *TaxonomyCache) Load(ctx context.Context, key string, out interface{}) bool {
	if c == nil || c.repo == nil {
		return false
	}

	data, err := c.repo.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if data == nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("Cache entry is not decodable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *TaxonomyCache) Store(ctx context.Context, key string, value interface{}) {
	if c == nil || c.repo == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.repo.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *TaxonomyCache) Invalidate(ctx context.Context) {
	if c == nil || c.repo == nil {
		return
	}

	if err := c.repo.DeleteByPrefix(ctx, taxonomyCachePrefix); err != nil {
		c.logger.Warn("Cache invalidation failed", zap.Error(err))
	}
}
