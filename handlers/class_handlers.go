package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"mentorai/backend/models"
	"mentorai/backend/utils"
)

// RecordingRequest is the body of the recording URL update.
type RecordingRequest struct {
	RecordingURL string `json:"recordingUrl" validate:"required,max=2048"`
}

// TranscriptRequest is the body of the transcript update.
type TranscriptRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// AnalysisRequest is the body of the analysis data update. Any JSON value except null is
// accepted.
type AnalysisRequest struct {
	AnalysisData json.RawMessage `json:"analysisData" swaggertype:"object"`
}

const classNotFound = "Class not found"

// GetClasses godoc
// @Summary List all classes
// @Description Returns every class, newest first.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ClassListResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/classes [get]
func (h *ApplicationHandler) GetClasses(c *fiber.Ctx) error {
	list, err := h.Classes.GetAll(c.UserContext())
	if err != nil {
		return h.respondStoreError(c, err, "Error getting classes")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, list, fiber.Map{"count": len(list)})
}

// SearchClasses godoc
// @Summary Search classes
// @Description Case-insensitive substring match on class name or teacher.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param q query string true "Search term"
// @Success 200 {object} ClassSearchResponse
// @Failure 400 {object} ErrorResponse "Missing search term"
// @Failure 500 {object} ErrorResponse
// @Router /api/classes/search [get]
func (h *ApplicationHandler) SearchClasses(c *fiber.Ctx) error {
	term := c.Query("q")
	if strings.TrimSpace(term) == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Search term is required", nil)
	}

	list, err := h.Classes.Search(c.UserContext(), term)
	if err != nil {
		return h.respondStoreError(c, err, "Error searching classes")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, list, fiber.Map{
		"count":      len(list),
		"searchTerm": term,
	})
}

// GetClass godoc
// @Summary Get a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} ClassResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/classes/{id} [get]
func (h *ApplicationHandler) GetClass(c *fiber.Ctx) error {
	class, found, err := h.Classes.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondStoreError(c, err, "Error getting class")
	}
	if !found {
		return utils.RespondWithError(c, fiber.StatusNotFound, classNotFound, nil)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, class)
}

// CreateClass godoc
// @Summary Create a class
// @Description Name and teacher are required. Status defaults to active.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param class body models.ClassInput true "Class to create"
// @Success 201 {object} ClassCreatedResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/classes [post]
func (h *ApplicationHandler) CreateClass(c *fiber.Ctx) error {
	var input models.ClassInput
	if err := h.parseBody(c, &input); err != nil {
		return err
	}

	id, err := h.Classes.Create(c.UserContext(), input)
	if err != nil {
		return h.respondStoreError(c, err, "Error creating class")
	}
	return c.Status(fiber.StatusCreated).JSON(ClassCreatedResponse{
		Success: true,
		Message: "Class created successfully",
		Data:    CreatedClass{ID: id, ClassInput: input},
	})
}

// UpdateClass godoc
// @Summary Update a class
// @Description Fields left out of the body keep their stored values.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param class body models.ClassInput true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/classes/{id} [put]
func (h *ApplicationHandler) UpdateClass(c *fiber.Ctx) error {
	var input models.ClassInput
	if err := h.parseBody(c, &input); err != nil {
		return err
	}

	found, err := h.Classes.Update(c.UserContext(), c.Params("id"), input)
	return h.respondWrite(c, found, err, "Class updated successfully", "Error updating class")
}

// DeleteClass godoc
// @Summary Delete a class
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/classes/{id} [delete]
func (h *ApplicationHandler) DeleteClass(c *fiber.Ctx) error {
	found, err := h.Classes.Delete(c.UserContext(), c.Params("id"))
	return h.respondWrite(c, found, err, "Class deleted successfully", "Error deleting class")
}

// UpdateRecordingURL godoc
// @Summary Set the recording URL of a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param body body RecordingRequest true "Recording URL"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/classes/{id}/recording [put]
func (h *ApplicationHandler) UpdateRecordingURL(c *fiber.Ctx) error {
	var req RecordingRequest
	if err := h.parseBody(c, &req); err != nil {
		return err
	}

	found, err := h.Classes.UpdateRecordingURL(c.UserContext(), c.Params("id"), req.RecordingURL)
	return h.respondWrite(c, found, err, "Recording URL updated successfully", "Error updating recording URL")
}

// UpdateTranscript godoc
// @Summary Set the transcript of a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param body body TranscriptRequest true "Transcript"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/classes/{id}/transcript [put]
func (h *ApplicationHandler) UpdateTranscript(c *fiber.Ctx) error {
	var req TranscriptRequest
	if err := h.parseBody(c, &req); err != nil {
		return err
	}

	found, err := h.Classes.UpdateTranscript(c.UserContext(), c.Params("id"), req.Transcript)
	return h.respondWrite(c, found, err, "Transcript updated successfully", "Error updating transcript")
}

// UpdateAnalysisData godoc
// @Summary Set the analysis data of a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Class ID"
// @Param body body AnalysisRequest true "Analysis data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/classes/{id}/analysis [put]
func (h *ApplicationHandler) UpdateAnalysisData(c *fiber.Ctx) error {
	var req AnalysisRequest
	if err := h.parseBody(c, &req); err != nil {
		return err
	}

	found, err := h.Classes.UpdateAnalysisData(c.UserContext(), c.Params("id"), req.AnalysisData)
	return h.respondWrite(c, found, err, "Analysis data updated successfully", "Error updating analysis data")
}

// parseBody decodes and validates the JSON body into out. Failures are returned as 400
// *fiber.Error values for ErrorHandler to render.
func (h *ApplicationHandler) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse request body: "+err.Error())
	}
	if err := h.Validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, utils.ValidationMessage(err))
	}
	return nil
}

func (h *ApplicationHandler) respondWrite(c *fiber.Ctx, found bool, err error, okMessage, errMessage string) error {
	if err != nil {
		return h.respondStoreError(c, err, errMessage)
	}
	if !found {
		return utils.RespondWithError(c, fiber.StatusNotFound, classNotFound, nil)
	}
	return c.JSON(MessageResponse{Success: true, Message: okMessage})
}
