package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/city-tourism-backend/internal/delivery/http/middleware"
	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/utils"
	"github.com/city-tourism-backend/internal/pkg/validator"
	"github.com/city-tourism-backend/internal/usecase"
	"github.com/city-tourism-backend/internal/usecase/dto"
)

// AuthHandler - обработчик аутентификации
type AuthHandler struct {
	authUC *usecase.AuthUseCase
	logger *zap.Logger
}

func NewAuthHandler(authUC *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, logger: logger}
}

// Login - выдача пары access/refresh токенов
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	pair, err := h.authUC.Login(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, pair, nil)
}

// Refresh - новый access-токен по refresh-токену
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	pair, err := h.authUC.Refresh(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, pair, nil)
}

// Logout - сброс refresh-токена текущего пользователя
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims := middleware.ClaimsFromCtx(c)
	if claims == nil {
		return utils.SendError(c, errors.ErrUnauthorized)
	}

	if err := h.authUC.Logout(c.Context(), claims.UserID); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.MessageResponse{Message: "Logged out"}, nil)
}

// ForgotPassword - генерация нового пароля и отправка на почту
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.authUC.ForgotPassword(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.MessageResponse{
		Message: "If the email is registered, a new password has been sent",
	}, nil)
}

// ResetPassword - установка нового пароля по reset-токену
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.authUC.ResetPassword(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.MessageResponse{Message: "Password updated"}, nil)
}
