package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the fiber locals key holding the request id.
const RequestIDKey = "requestid"

const requestIDHeader = "X-Request-ID"

// RequestLogger writes one structured access log line per request. An incoming
// X-Request-ID is reused when it is a valid uuid; otherwise a new one is generated. The id
// is echoed back in the response header and stored in locals under RequestIDKey.
func RequestLogger(logger logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Locals(RequestIDKey, requestID)
		c.Set(requestIDHeader, requestID)

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The error handler has not written the response yet.
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		fields := logrus.Fields{
			"request_id": requestID,
			"method":     c.Method(),
			"path":       c.OriginalURL(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
			"user_agent": c.Get(fiber.HeaderUserAgent),
		}
		if claims, ok := c.Locals(UserKey).(jwt.MapClaims); ok {
			if sub, _ := claims.GetSubject(); sub != "" {
				fields["user"] = sub
			}
		}
		entry := logger.WithFields(fields)

		switch {
		case status >= fiber.StatusInternalServerError:
			if err != nil {
				entry = entry.WithError(err)
			}
			entry.Error("Request failed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}

		return err
	}
}
