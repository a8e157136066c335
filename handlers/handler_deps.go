package handlers

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"mentorai/backend/models"
)

// ClassStore defines the class operations handlers expect.
// The concrete implementation is provided by the classes package.
type ClassStore interface {
	GetAll(ctx context.Context) ([]models.Class, error)
	GetByID(ctx context.Context, id string) (*models.Class, bool, error)
	Create(ctx context.Context, input models.ClassInput) (string, error)
	Update(ctx context.Context, id string, input models.ClassInput) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, term string) ([]models.Class, error)
	UpdateRecordingURL(ctx context.Context, id, recordingURL string) (bool, error)
	UpdateTranscript(ctx context.Context, id, transcript string) (bool, error)
	UpdateAnalysisData(ctx context.Context, id string, data json.RawMessage) (bool, error)
}

// Transcriber defines the WhisperX operations handlers expect.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, cfg models.TranscriptionConfig) (*models.TranscriptionResult, error)
	CheckAvailability(ctx context.Context) bool
	ModelInfo(ctx context.Context, model string) models.ModelInfo
	DebugInfo() models.DebugInfo
}

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Classes     ClassStore
	Transcriber Transcriber
	DB          Pinger
	Logger      *logrus.Logger
	Validate    *validator.Validate
	// UploadDir receives audio uploads for the lifetime of one request.
	UploadDir string
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(classes ClassStore, transcriber Transcriber, db Pinger, logger *logrus.Logger, uploadDir string) *ApplicationHandler {
	return &ApplicationHandler{
		Classes:     classes,
		Transcriber: transcriber,
		DB:          db,
		Logger:      logger,
		Validate:    validator.New(),
		UploadDir:   uploadDir,
	}
}
