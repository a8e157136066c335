package handlers

import (
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mentorai/backend/internal/transcript"
	"mentorai/backend/internal/worker"
	"mentorai/backend/models"
	"mentorai/backend/utils"
)

// MaxUploadSize is the largest accepted audio upload.
const MaxUploadSize = 100 * 1024 * 1024

// allowedAudioTypes is the MIME allow-list for transcription uploads.
var allowedAudioTypes = map[string]bool{
	"audio/wav":  true,
	"audio/mp3":  true,
	"audio/mpeg": true,
	"audio/ogg":  true,
	"audio/webm": true,
	"audio/m4a":  true,
	"audio/flac": true,
}

// TranscribeAudio godoc
// @Summary Transcribe an audio recording
// @Description Runs WhisperX on the uploaded file and returns the formatted transcript, segments, speaker roster and participation statistics.
// @Tags whisperx
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param audio formData file true "Audio file (wav, mp3, mpeg, ogg, webm, m4a, flac; max 100MB)"
// @Param model formData string false "Whisper model" default(base)
// @Param language formData string false "Language code" default(es)
// @Param compute_type formData string false "Compute type" default(int8)
// @Param batch_size formData int false "Batch size" default(8)
// @Param diarize formData bool false "Enable speaker diarization" default(false)
// @Param min_speakers formData int false "Minimum speakers" default(1)
// @Param max_speakers formData int false "Maximum speakers" default(5)
// @Success 200 {object} TranscriptionSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Transcription queue is full"
// @Router /api/whisperx/transcribe [post]
func (h *ApplicationHandler) TranscribeAudio(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No audio file provided", nil)
	}
	if file.Size > MaxUploadSize {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Audio file exceeds the 100MB limit", nil)
	}
	if !isAllowedAudio(file.Header.Get(fiber.HeaderContentType)) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Only audio files are allowed", nil)
	}

	var cfg models.TranscriptionConfig
	if err := c.BodyParser(&cfg); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid transcription options", err)
	}
	if err := h.Validate.Struct(cfg); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.ValidationMessage(err), nil)
	}
	if cfg.MinSpeakers > 0 && cfg.MaxSpeakers > 0 && cfg.MinSpeakers > cfg.MaxSpeakers {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "min_speakers cannot be greater than max_speakers", nil)
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		h.Logger.WithError(err).Error("Error creating upload directory")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Error storing audio file", err)
	}
	path := filepath.Join(h.UploadDir, "audio-"+uuid.NewString()+strings.ToLower(filepath.Ext(file.Filename)))
	defer h.removeUpload(path)

	if err := c.SaveFile(file, path); err != nil {
		h.Logger.WithError(err).Error("Error saving uploaded audio")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Error storing audio file", err)
	}

	log := h.Logger.WithFields(logrus.Fields{
		"original_name": file.Filename,
		"size":          file.Size,
	})
	log.Info("Processing audio file")

	result, err := h.Transcriber.Transcribe(c.UserContext(), path, cfg)
	if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrStopped) {
		log.WithError(err).Warn("Transcription rejected")
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, "Transcription service is busy, try again later", err)
	}
	if err != nil {
		log.WithError(err).Error("Error in transcription")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Transcription failed", err)
	}

	return utils.RespondWithJSON(c, fiber.StatusOK, models.TranscriptionResponse{
		Transcript:    transcript.FormatTranscript(result.Segments),
		Segments:      result.Segments,
		Speakers:      transcript.ExtractSpeakers(result.Segments),
		Language:      result.Language,
		Duration:      result.Duration,
		Participation: transcript.AnalyzeParticipation(result.Segments),
	})
}

// CheckAvailability godoc
// @Summary Check whether WhisperX can be executed
// @Tags whisperx
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AvailabilityResponse
// @Router /api/whisperx/availability [get]
func (h *ApplicationHandler) CheckAvailability(c *fiber.Ctx) error {
	return utils.RespondWithJSON(c, fiber.StatusOK, Availability{
		Available: h.Transcriber.CheckAvailability(c.UserContext()),
		Timestamp: time.Now().UTC(),
	})
}

// GetModelInfo godoc
// @Summary Get WhisperX help output for a model
// @Tags whisperx
// @Produce json
// @Security BearerAuth
// @Param model path string false "Model name" default(large-v2)
// @Success 200 {object} ModelInfoResponse
// @Router /api/whisperx/models/{model} [get]
func (h *ApplicationHandler) GetModelInfo(c *fiber.Ctx) error {
	model := c.Params("model")
	if model == "" {
		model = models.DefaultInfoModel
	}
	if strings.HasPrefix(model, "-") {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid model name", nil)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, h.Transcriber.ModelInfo(c.UserContext(), model))
}

// DebugConfig godoc
// @Summary Show the configured WhisperX paths
// @Tags whisperx
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DebugResponse
// @Router /api/whisperx/debug [get]
func (h *ApplicationHandler) DebugConfig(c *fiber.Ctx) error {
	return utils.RespondWithJSON(c, fiber.StatusOK, h.Transcriber.DebugInfo())
}

func (h *ApplicationHandler) removeUpload(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.Logger.WithError(err).WithField("path", path).Warn("Failed to cleanup file")
	}
}

func isAllowedAudio(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return allowedAudioTypes[strings.ToLower(mediaType)]
}
