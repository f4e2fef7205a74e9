package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/city-tourism-backend/internal/pkg/errors"
	"github.com/city-tourism-backend/internal/pkg/token"
	"github.com/city-tourism-backend/internal/pkg/utils"
)

// claimsKey is the ctx local under which the JWT claims are stored.
const claimsKey = "auth_claims"

// JWT - middleware проверки Bearer-токена; claims кладутся в контекст.
func JWT(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRoles passes when the authenticated user holds at least one of
// the listed roles. With no roles listed any authenticated user passes.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromCtx(c)
		if claims == nil {
			return utils.SendError(c, errors.ErrUnauthorized)
		}

		if len(roles) == 0 {
			return c.Next()
		}

		for _, required := range roles {
			for _, held := range claims.Roles {
				if held == required {
					return c.Next()
				}
			}
		}

		return utils.SendError(c, errors.ErrForbidden)
	}
}

// ClaimsFromCtx returns the claims stored by the JWT middleware, nil
// when the route is unauthenticated.
func ClaimsFromCtx(c *fiber.Ctx) *token.Claims {
	claims, _ := c.Locals(claimsKey).(*token.Claims)
	return claims
}
