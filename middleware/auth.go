package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"mentorai/backend/utils"
)

// UserKey is the fiber locals key holding the verified jwt.MapClaims.
const UserKey = "user"

// RequireAuth verifies an HMAC-signed bearer token. A missing token is answered with 401,
// an invalid or expired one with 403.
func RequireAuth(secret string) fiber.Handler {
	key := []byte(secret)
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}

	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return utils.RespondWithError(c, fiber.StatusUnauthorized, "Access token required", nil)
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, keyFunc)
		if err != nil || !token.Valid {
			return utils.RespondWithError(c, fiber.StatusForbidden, "Invalid or expired token", nil)
		}

		c.Locals(UserKey, claims)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
