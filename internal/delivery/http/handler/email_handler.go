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

// EmailHandler - обработчик отправки писем по шаблону
type EmailHandler struct {
	emailUC *usecase.EmailUseCase
	logger  *zap.Logger
}

func NewEmailHandler(emailUC *usecase.EmailUseCase, logger *zap.Logger) *EmailHandler {
	return &EmailHandler{emailUC: emailUC, logger: logger}
}

func (h *EmailHandler) Send(c *fiber.Ctx) error {
	var req dto.SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.emailUC.Send(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.MessageResponse{Message: "Email sent"}, nil)
}
