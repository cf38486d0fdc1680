package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/ueldo/ueldo-backend/internal/dto"
)

// FileTokenKey is the locals key holding the verified *jwt.Token.
const FileTokenKey = "file_token"

// SignedFile accepts only requests carrying a valid ?token= issued by storage.Signer.
func SignedFile(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{JWTAlg: "HS256", Key: secret},
		TokenLookup: "query:token",
		ContextKey:  FileTokenKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Forbidden: invalid or expired file link",
			})
		},
	})
}
