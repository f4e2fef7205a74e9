package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/city-tourism-backend/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total int        `json:"total,omitempty"`
	Page  int        `json:"page,omitempty"`
	Limit int        `json:"limit,omitempty"`
	Links *PageLinks `json:"links,omitempty"`
}

// PageLinks carries the synthesized previous/next URLs for a paginated
// listing. A nil entry means the window has no page in that direction.
type PageLinks struct {
	Previous *string `json:"previous"`
	Next     *string `json:"next"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Data: data,
	})
}

func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*errors.AppError); ok {
		// Empty result sets are a bodyless 204, not an error payload.
		if appErr.Code == errors.CodeNoContent {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	// Unknown error - return 500
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
