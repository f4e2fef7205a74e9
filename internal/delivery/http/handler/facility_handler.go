package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/utils"
	"github.com/city-tourism-backend/internal/pkg/validator"
	"github.com/city-tourism-backend/internal/usecase"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

// FacilityHandler - обработчик для удобств (facilities)
type FacilityHandler struct {
	facilityUC *usecase.FacilityUseCase
	logger     *zap.Logger
}

func NewFacilityHandler(facilityUC *usecase.FacilityUseCase, logger *zap.Logger) *FacilityHandler {
	return &FacilityHandler{facilityUC: facilityUC, logger: logger}
}

func (h *FacilityHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateFacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	f, err := h.facilityUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, f)
}

func (h *FacilityHandler) FindAll(c *fiber.Ctx) error {
	facilities, err := h.facilityUC.FindAll(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, facilities, &utils.Meta{Total: len(facilities)})
}

func (h *FacilityHandler) FindOne(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	f, err := h.facilityUC.FindOne(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, f, nil)
}

func (h *FacilityHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateFacilityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	f, err := h.facilityUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, f, nil)
}

func (h *FacilityHandler) Remove(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.facilityUC.Remove(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "deleted": true}, nil)
}
