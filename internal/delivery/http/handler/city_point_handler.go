package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/infrastructure/storage"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/utils"
	"github.com/city-tourism-backend/internal/pkg/validator"
	"github.com/city-tourism-backend/internal/usecase"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

// imagesSubdir is where point-of-interest uploads land under the
// uploads root.
const imagesSubdir = "city-points"

// CityPointHandler - обработчик для точек интереса
type CityPointHandler struct {
	pointUC *usecase.CityPointUseCase
	store   *storage.DiskStore
	logger  *zap.Logger
}

func NewCityPointHandler(pointUC *usecase.CityPointUseCase, store *storage.DiskStore, logger *zap.Logger) *CityPointHandler {
	return &CityPointHandler{
		pointUC: pointUC,
		store:   store,
		logger:  logger,
	}
}

// Create - создание точки интереса (multipart form, поле images)
func (h *CityPointHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCityPointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	images, err := h.saveImages(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	req.Images = images

	point, err := h.pointUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, point)
}

// FindAll - фильтрованный постраничный список активных точек
func (h *CityPointHandler) FindAll(c *fiber.Ctx) error {
	var req dto.ListCityPointsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidPagination)
	}

	// Distinguish an absent limit/page from an explicit zero.
	limit, page, err := parsePagination(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	req.Limit, req.Page = limit, page

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.pointUC.FindAll(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Results, &utils.Meta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Links: result.Links,
	})
}

// FindAllWithDeleted - список с учётом удалённых записей
func (h *CityPointHandler) FindAllWithDeleted(c *fiber.Ctx) error {
	limit, page, err := parsePagination(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.pointUC.FindAllWithDeleted(c.Context(), limit, page)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Results, &utils.Meta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Links: result.Links,
	})
}

// FindDeleted - только удалённые записи
func (h *CityPointHandler) FindDeleted(c *fiber.Ctx) error {
	limit, page, err := parsePagination(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.pointUC.FindDeleted(c.Context(), limit, page)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Results, &utils.Meta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Links: result.Links,
	})
}

// FindEvents - события, отсортированные по дате начала
func (h *CityPointHandler) FindEvents(c *fiber.Ctx) error {
	limit, page, err := parsePagination(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.pointUC.FindEvents(c.Context(), limit, page)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Results, &utils.Meta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
		Links: result.Links,
	})
}

// FindOne - одна активная точка по ID
func (h *CityPointHandler) FindOne(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	point, err := h.pointUC.FindOne(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, point, nil)
}

// Update - частичное обновление, включая добавление/удаление картинок
func (h *CityPointHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateCityPointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	newImages, err := h.saveImages(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	req.NewImages = newImages

	point, err := h.pointUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, point, nil)
}

// Remove - мягкое удаление
func (h *CityPointHandler) Remove(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.pointUC.Remove(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "deleted": true}, nil)
}

// Restore - восстановление мягко удалённой точки
func (h *CityPointHandler) Restore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	point, err := h.pointUC.Restore(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, point, nil)
}

// saveImages stores every part of the multipart "images" field and
// returns their public paths. A non-multipart body just means no
// uploads.
func (h *CityPointHandler) saveImages(c *fiber.Ctx) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	files := form.File["images"]
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		stored, err := h.store.Save(imagesSubdir, fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, stored.Path)
	}

	return paths, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidID
	}
	return id, nil
}

// parsePagination reads the limit/page query params. Absent params
// come back as zero and take the defaults downstream; an explicitly
// non-positive or non-numeric value is a 400.
func parsePagination(c *fiber.Ctx) (int, int, error) {
	limit, err := paginationValue(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	page, err := paginationValue(c, "page")
	if err != nil {
		return 0, 0, err
	}
	return limit, page, nil
}

func paginationValue(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, errors.ErrInvalidPagination
	}
	return v, nil
}
