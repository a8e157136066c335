// Package jobs adapts transcription requests to the worker pool.
package jobs

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"mentorai/backend/internal/worker"
	"mentorai/backend/models"
)

// Service is everything the HTTP layer needs from WhisperX.
type Service interface {
	Engine
	CheckAvailability(ctx context.Context) bool
	ModelInfo(ctx context.Context, model string) models.ModelInfo
	DebugInfo() models.DebugInfo
}

// Submitter is the part of the dispatcher QueuedTranscriber uses.
type Submitter interface {
	SubmitJob(job worker.Job) error
}

// QueuedTranscriber runs transcriptions on the worker pool so that at most as many
// WhisperX processes run as there are workers. Probes go straight to the service.
type QueuedTranscriber struct {
	service Service
	queue   Submitter
	logger  logrus.FieldLogger
}

// NewQueuedTranscriber creates a QueuedTranscriber.
func NewQueuedTranscriber(service Service, queue Submitter, logger logrus.FieldLogger) *QueuedTranscriber {
	return &QueuedTranscriber{service: service, queue: queue, logger: logger}
}

// Transcribe queues the file and waits for the result. It returns worker.ErrQueueFull
// without waiting when no slot is free.
func (q *QueuedTranscriber) Transcribe(ctx context.Context, audioPath string, cfg models.TranscriptionConfig) (*models.TranscriptionResult, error) {
	job := NewTranscriptionJob(ctx, q.service, uuid.NewString(), audioPath, cfg)
	if err := q.queue.SubmitJob(job); err != nil {
		return nil, err
	}
	q.logger.WithFields(logrus.Fields{"job_id": job.ID(), "type": job.Type()}).Debug("Transcription queued")

	select {
	case <-job.Done():
		return job.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *QueuedTranscriber) CheckAvailability(ctx context.Context) bool {
	return q.service.CheckAvailability(ctx)
}

func (q *QueuedTranscriber) ModelInfo(ctx context.Context, model string) models.ModelInfo {
	return q.service.ModelInfo(ctx, model)
}

func (q *QueuedTranscriber) DebugInfo() models.DebugInfo {
	return q.service.DebugInfo()
}
