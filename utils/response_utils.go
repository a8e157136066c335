package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RespondWithError sends the failure envelope. err, when non-nil, is exposed as "error".
func RespondWithError(c *fiber.Ctx, statusCode int, message string, err error) error {
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(statusCode).JSON(body)
}

// RespondWithJSON sends the success envelope with data, merged with any extra top-level fields.
func RespondWithJSON(c *fiber.Ctx, statusCode int, data interface{}, extra ...fiber.Map) error {
	body := fiber.Map{
		"success": true,
		"data":    data,
	}
	for _, m := range extra {
		for k, v := range m {
			body[k] = v
		}
	}
	return c.Status(statusCode).JSON(body)
}

// FormatValidationErrors formats validation errors from validator/v10.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		if err == nil {
			return nil
		}
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		element := fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		if fe.Param() != "" {
			element = fmt.Sprintf("%s (value: %s)", element, fe.Param())
		}
		messages = append(messages, element)
	}
	return messages
}

// ValidationMessage joins FormatValidationErrors into one line.
func ValidationMessage(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}
