package auth

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/wichananm65/zoo-backend/internal/account"
)

const contextKey = "user"

// Identity is the authenticated caller extracted from a token.
type Identity struct {
	Email string
	Role  account.Role
}

// Middleware rejects requests without a valid bearer token signed with secret.
func Middleware(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		ContextKey:    contextKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		},
	})
}

// IdentityFromCtx reads the email and role claims stored by Middleware.
func IdentityFromCtx(c *fiber.Ctx) (Identity, error) {
	tok, ok := c.Locals(contextKey).(*jwt.Token)
	if !ok || tok == nil {
		return Identity{}, fiber.ErrUnauthorized
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fiber.ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return Identity{}, fiber.ErrUnauthorized
	}
	roleName, _ := claims["role"].(string)
	role, err := account.ParseRole(roleName)
	if err != nil {
		return Identity{}, fiber.ErrUnauthorized
	}
	return Identity{Email: email, Role: role}, nil
}
