package jobs

import (
	"context"
	"sync"

	"mentorai/backend/models"
)

// Engine is the transcription backend a job drives.
type Engine interface {
	Transcribe(ctx context.Context, audioPath string, cfg models.TranscriptionConfig) (*models.TranscriptionResult, error)
}

// TranscriptionJob defines a job that transcribes one uploaded audio file.
type TranscriptionJob struct {
	JobID     string
	AudioPath string
	Config    models.TranscriptionConfig

	ctx    context.Context
	engine Engine

	once   sync.Once
	done   chan struct{}
	result *models.TranscriptionResult
	err    error
}

// TranscriptionJobPayload is the loggable view of a job's input.
type TranscriptionJobPayload struct {
	JobID     string                     `json:"job_id"`
	AudioPath string                     `json:"audio_path"`
	Config    models.TranscriptionConfig `json:"config"`
}

// NewTranscriptionJob creates a TranscriptionJob. ctx bounds the process once it starts.
func NewTranscriptionJob(ctx context.Context, engine Engine, jobID, audioPath string, cfg models.TranscriptionConfig) *TranscriptionJob {
	return &TranscriptionJob{
		JobID:     jobID,
		AudioPath: audioPath,
		Config:    cfg,
		ctx:       ctx,
		engine:    engine,
		done:      make(chan struct{}),
	}
}

// ID returns the unique identifier of the job.
func (j *TranscriptionJob) ID() string {
	return j.JobID
}

// Execute runs the transcription and records its outcome.
func (j *TranscriptionJob) Execute() error {
	if err := j.ctx.Err(); err != nil {
		j.finish(nil, err)
		return err
	}
	result, err := j.engine.Transcribe(j.ctx, j.AudioPath, j.Config)
	j.finish(result, err)
	return err
}

// Cancel records err as the outcome of a job that will never run.
func (j *TranscriptionJob) Cancel(err error) {
	j.finish(nil, err)
}

func (j *TranscriptionJob) finish(result *models.TranscriptionResult, err error) {
	j.once.Do(func() {
		j.result, j.err = result, err
		close(j.done)
	})
}

// Done is closed once the job has an outcome.
func (j *TranscriptionJob) Done() <-chan struct{} {
	return j.done
}

// Result returns the outcome. It is only meaningful after Done is closed.
func (j *TranscriptionJob) Result() (*models.TranscriptionResult, error) {
	return j.result, j.err
}

// Type returns the type of the job.
func (j *TranscriptionJob) Type() string {
	return "TRANSCRIBE_AUDIO"
}

// Payload returns the input parameters of the job for logging.
func (j *TranscriptionJob) Payload() interface{} {
	return TranscriptionJobPayload{
		JobID:     j.JobID,
		AudioPath: j.AudioPath,
		Config:    j.Config,
	}
}
