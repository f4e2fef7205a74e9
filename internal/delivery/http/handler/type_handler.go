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

// TypeHandler - обработчик для типов таксономии
type TypeHandler struct {
	typeUC *usecase.TypeUseCase
	logger *zap.Logger
}

func NewTypeHandler(typeUC *usecase.TypeUseCase, logger *zap.Logger) *TypeHandler {
	return &TypeHandler{typeUC: typeUC, logger: logger}
}

func (h *TypeHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	t, err := h.typeUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, t)
}

func (h *TypeHandler) FindAll(c *fiber.Ctx) error {
	types, err := h.typeUC.FindAll(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, types, &utils.Meta{Total: len(types)})
}

func (h *TypeHandler) FindOne(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	t, err := h.typeUC.FindOne(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, t, nil)
}

func (h *TypeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	t, err := h.typeUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, t, nil)
}

func (h *TypeHandler) Remove(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.typeUC.Remove(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"id": id, "deleted": true}, nil)
}
