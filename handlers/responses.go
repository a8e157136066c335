package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"mentorai/backend/internal/classes"
	"mentorai/backend/models"
	"mentorai/backend/utils"
)

// The types below document response bodies for swagger. Handlers write the same shapes
// through utils.RespondWithJSON and utils.RespondWithError.

// ErrorResponse defines the common structure of error responses.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// MessageResponse is returned by writes that carry no data.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message"`
}

// ClassResponse wraps a single class.
type ClassResponse struct {
	Success bool         `json:"success" example:"true"`
	Data    models.Class `json:"data"`
}

// ClassListResponse wraps a list of classes.
type ClassListResponse struct {
	Success bool           `json:"success" example:"true"`
	Data    []models.Class `json:"data"`
	Count   int            `json:"count"`
}

// ClassSearchResponse is ClassListResponse plus the term that was searched.
type ClassSearchResponse struct {
	Success    bool           `json:"success" example:"true"`
	Data       []models.Class `json:"data"`
	Count      int            `json:"count"`
	SearchTerm string         `json:"searchTerm"`
}

// CreatedClass echoes the supplied input next to the generated id.
type CreatedClass struct {
	ID string `json:"id"`
	models.ClassInput
}

// ClassCreatedResponse is returned by class creation.
type ClassCreatedResponse struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message"`
	Data    CreatedClass `json:"data"`
}

// TranscriptionSuccessResponse wraps a processed transcription.
type TranscriptionSuccessResponse struct {
	Success bool                         `json:"success" example:"true"`
	Data    models.TranscriptionResponse `json:"data"`
}

// Availability reports whether the WhisperX executable runs.
type Availability struct {
	Available bool      `json:"available"`
	Timestamp time.Time `json:"timestamp"`
}

// AvailabilityResponse wraps Availability.
type AvailabilityResponse struct {
	Success bool         `json:"success" example:"true"`
	Data    Availability `json:"data"`
}

// ModelInfoResponse wraps models.ModelInfo.
type ModelInfoResponse struct {
	Success bool             `json:"success" example:"true"`
	Data    models.ModelInfo `json:"data"`
}

// DebugResponse wraps models.DebugInfo.
type DebugResponse struct {
	Success bool             `json:"success" example:"true"`
	Data    models.DebugInfo `json:"data"`
}

// HealthResponse reports process and database status.
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Database  string    `json:"database" example:"connected"`
	Timestamp time.Time `json:"timestamp"`
}

// respondStoreError maps a class store failure onto the error envelope.
func (h *ApplicationHandler) respondStoreError(c *fiber.Ctx, err error, message string) error {
	var vErr *classes.ValidationError
	if errors.As(err, &vErr) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, vErr.Message, nil)
	}
	h.Logger.WithError(err).Error(message)
	return utils.RespondWithError(c, fiber.StatusInternalServerError, message, err)
}

// ErrorHandler renders errors returned by handlers with the failure envelope. Only errors
// that are not *fiber.Error expose their text in "error".
func ErrorHandler(h *ApplicationHandler) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
			err = nil
		}
		if code >= fiber.StatusInternalServerError {
			h.Logger.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		}
		return utils.RespondWithError(c, code, message, err)
	}
}
