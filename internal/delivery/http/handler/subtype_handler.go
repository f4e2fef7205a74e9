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

// SubtypeHandler - обработчик для подтипов
type SubtypeHandler struct {
	subtypeUC *usecase.SubtypeUseCase
	logger    *zap.Logger
}

func NewSubtypeHandler(subtypeUC *usecase.SubtypeUseCase, logger *zap.Logger) *SubtypeHandler {
	return &SubtypeHandler{subtypeUC: subtypeUC, logger: logger}
}

func (h *SubtypeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSubtypeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.subtypeUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, s)
}

func (h *SubtypeHandler) FindAll(c *fiber.Ctx) error {
	var req dto.ListSubtypesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	subtypes, err := h.subtypeUC.FindAll(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, subtypes, &utils.Meta{Total: len(subtypes)})
}

func (h *SubtypeHandler) FindOne(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.subtypeUC.FindOne(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, s, nil)
}

func (h *SubtypeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateSubtypeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.subtypeUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, s, nil)
}

func (h *SubtypeHandler) Remove(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.subtypeUC.Remove(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "deleted": true}, nil)
}
