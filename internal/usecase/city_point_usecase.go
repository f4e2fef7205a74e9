package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/domain"
	"github.com/city-tourism-backend/internal/domain/repository"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/utils"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

const cityPointBasePath = "/city-point-of-interest"

// ImageStore abstracts the disk side effects the update path needs.
type ImageStore interface {
	RemoveByPublicPath(publicPath string)
}

type CityPointUseCase struct {
	pointRepo    repository.CityPointRepository
	typeRepo     repository.TypeRepository
	subtypeRepo  repository.SubtypeRepository
	facilityRepo repository.FacilityRepository
	images       ImageStore
	logger       *zap.Logger
}

func NewCityPointUseCase(
	pointRepo repository.CityPointRepository,
	typeRepo repository.TypeRepository,
	subtypeRepo repository.SubtypeRepository,
	facilityRepo repository.FacilityRepository,
	images ImageStore,
	logger *zap.Logger,
) *CityPointUseCase {
	return &CityPointUseCase{
		pointRepo:    pointRepo,
		typeRepo:     typeRepo,
		subtypeRepo:  subtypeRepo,
		facilityRepo: facilityRepo,
		images:       images,
		logger:       logger,
	}
}

func (uc *CityPointUseCase) Create(ctx context.Context, req dto.CreateCityPointRequest) (*domain.CityPoint, error) {
	t, err := uc.typeRepo.GetByID(ctx, req.TypeID)
	if err != nil {
		return nil, err
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	// Event points must carry a start date.
	if t.Role == domain.RoleEvents && startDate == nil {
		return nil, errors.ErrInvalidRequest.WithMessage("StartDate is required for type %s", t.Name)
	}

	var subtype *domain.Subtype
	var facilityIDs []int64

	if req.SubtypeID != nil {
		subtype, err = uc.subtypeRepo.GetByID(ctx, *req.SubtypeID)
		if err != nil {
			return nil, err
		}

		if subtype.TypeID != t.ID {
			return nil, errors.ErrInvalidRequest.WithMessage(
				"Subtype with ID %d does not belong to Type with ID %d", subtype.ID, t.ID)
		}

		if len(req.Facilities) > 0 {
			valid, err := uc.facilityRepo.ListBySubtype(ctx, subtype.ID)
			if err != nil {
				return nil, err
			}

			validIDs := make(map[int64]bool, len(valid))
			for _, f := range valid {
				validIDs[f.ID] = true
			}

			var invalid []int64
			for _, id := range req.Facilities {
				if !validIDs[id] {
					invalid = append(invalid, id)
				}
			}
			if len(invalid) > 0 {
				return nil, errors.ErrInvalidRequest.
					WithMessage("Facility IDs do not belong to Subtype with ID %d", subtype.ID).
					WithDetails(map[string]interface{}{"invalidFacilityIds": invalid})
			}

			facilityIDs = req.Facilities
		}
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	point := &domain.CityPoint{
		Name:        req.Name,
		Contact:     req.Contact,
		Address:     req.Address,
		Description: req.Description,
		StartDate:   startDate,
		State:       req.State,
		Stars:       req.Stars,
		Places:      req.Places,
		Images:      images,
		UserID:      req.UserID,
		TypeID:      t.ID,
	}
	if subtype != nil {
		point.SubtypeID = &subtype.ID
	}

	created, err := uc.pointRepo.Create(ctx, point, facilityIDs)
	if err != nil {
		uc.logger.Error("Failed to create city point", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	return uc.pointRepo.GetByID(ctx, created.ID, domain.ActiveOnly)
}

func (uc *CityPointUseCase) FindAll(ctx context.Context, req dto.ListCityPointsRequest) (*dto.CityPointListResponse, error) {
	return uc.list(ctx, req, domain.ActiveOnly, false)
}

// FindAllWithDeleted returns the deleted-inclusive listing.
func (uc *CityPointUseCase) FindAllWithDeleted(ctx context.Context, limit, page int) (*dto.CityPointListResponse, error) {
	return uc.list(ctx, dto.ListCityPointsRequest{Limit: limit, Page: page}, domain.IncludeDeleted, false)
}

// FindDeleted returns only soft-deleted points.
func (uc *CityPointUseCase) FindDeleted(ctx context.Context, limit, page int) (*dto.CityPointListResponse, error) {
	return uc.list(ctx, dto.ListCityPointsRequest{Limit: limit, Page: page}, domain.DeletedOnly, false)
}

// FindEvents returns visible event points ordered by start date.
func (uc *CityPointUseCase) FindEvents(ctx context.Context, limit, page int) (*dto.CityPointListResponse, error) {
	return uc.list(ctx, dto.ListCityPointsRequest{Limit: limit, Page: page}, domain.ActiveOnly, true)
}

func (uc *CityPointUseCase) list(
	ctx context.Context,
	req dto.ListCityPointsRequest,
	mode domain.QueryMode,
	eventsOnly bool,
) (*dto.CityPointListResponse, error) {
	limit, page, err := utils.NormalizePagination(req.Limit, req.Page)
	if err != nil {
		return nil, err
	}

	filter := domain.CityPointFilter{
		Limit:      limit,
		Page:       page,
		TypeID:     req.TypeID,
		SubtypeID:  req.SubtypeID,
		UserID:     req.UserID,
		SortField:  req.SortField,
		SortOrder:  req.SortOrder,
		Mode:       mode,
		EventsOnly: eventsOnly,
	}

	points, total, err := uc.pointRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to list city points", zap.Error(err))
		return nil, err
	}

	if total == 0 {
		return nil, errors.ErrNoContent
	}

	return &dto.CityPointListResponse{
		Results: points,
		Total:   total,
		Page:    page,
		Limit:   limit,
		Links:   utils.BuildPageLinks(cityPointBasePath, limit, page, total),
	}, nil
}

func (uc *CityPointUseCase) FindOne(ctx context.Context, id int64) (*domain.CityPoint, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidID
	}
	return uc.pointRepo.GetByID(ctx, id, domain.ActiveOnly)
}

func (uc *CityPointUseCase) Update(ctx context.Context, id int64, req dto.UpdateCityPointRequest) (*domain.CityPoint, error) {
	point, err := uc.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	// Renaming to another record's name is a conflict; keeping the
	// current name is fine.
	if req.Name != nil && *req.Name != point.Name {
		existing, err := uc.pointRepo.GetByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != point.ID {
			return nil, errors.ErrNameConflict.WithMessage(
				"A city point of interest with the name %q already exists", *req.Name)
		}
		point.Name = *req.Name
	}

	if req.Contact != nil {
		point.Contact = *req.Contact
	}
	if req.Address != nil {
		point.Address = *req.Address
	}
	if req.Description != nil {
		point.Description = *req.Description
	}
	if req.State != nil {
		point.State = *req.State
	}
	if req.Stars != nil {
		point.Stars = *req.Stars
	}
	if req.Places != nil {
		point.Places = *req.Places
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		point.StartDate = startDate
	}
	if req.SubtypeID != nil {
		subtype, err := uc.subtypeRepo.GetByID(ctx, *req.SubtypeID)
		if err != nil {
			return nil, err
		}
		if subtype.TypeID != point.TypeID {
			return nil, errors.ErrInvalidRequest.WithMessage(
				"Subtype with ID %d does not belong to Type with ID %d", subtype.ID, point.TypeID)
		}
		point.SubtypeID = &subtype.ID
	}

	// Merge new uploads, then drop the caller-listed paths.
	images := append([]string{}, point.Images...)
	images = append(images, req.NewImages...)
	if len(req.ImagesToRemove) > 0 {
		removed := make(map[string]bool, len(req.ImagesToRemove))
		for _, path := range req.ImagesToRemove {
			removed[path] = true
		}
		kept := images[:0]
		for _, path := range images {
			if !removed[path] {
				kept = append(kept, path)
			}
		}
		images = kept
	}
	point.Images = images

	var facilityIDs []int64
	if len(req.Facilities) > 0 {
		resolved, err := uc.facilityRepo.GetByIDs(ctx, req.Facilities)
		if err != nil {
			return nil, err
		}
		if len(resolved) != len(req.Facilities) {
			found := make(map[int64]bool, len(resolved))
			for _, f := range resolved {
				found[f.ID] = true
			}
			var missing []int64
			for _, fid := range req.Facilities {
				if !found[fid] {
					missing = append(missing, fid)
				}
			}
			return nil, errors.ErrFacilityNotFound.
				WithMessage("One or more facilities not found").
				WithDetails(map[string]interface{}{"missingFacilityIds": missing})
		}
		facilityIDs = req.Facilities
	}

	if err := uc.pointRepo.Update(ctx, point, facilityIDs); err != nil {
		uc.logger.Error("Failed to update city point", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	// The record change is committed; unlink detached files
	// best-effort afterwards.
	for _, path := range req.ImagesToRemove {
		uc.images.RemoveByPublicPath(path)
	}

	return uc.pointRepo.GetByID(ctx, id, domain.ActiveOnly)
}

func (uc *CityPointUseCase) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.ErrInvalidID
	}

	affected, err := uc.pointRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrPointNotFound
	}

	uc.logger.Info("City point soft-deleted", zap.Int64("id", id))
	return nil
}

func (uc *CityPointUseCase) Restore(ctx context.Context, id int64) (*domain.CityPoint, error) {
	if id <= 0 {
		return nil, errors.ErrInvalidID
	}

	affected, err := uc.pointRepo.Restore(ctx, id)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.ErrPointNotFound
	}

	uc.logger.Info("City point restored", zap.Int64("id", id))
	return uc.pointRepo.GetByID(ctx, id, domain.ActiveOnly)
}

// parseDate accepts a date-only or RFC3339 timestamp form value.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, errors.ErrInvalidRequest.WithMessage("Invalid startDate value %q", s)
}
