package models

// Defaults applied to a TranscriptionConfig by WithDefaults.
const (
	DefaultModel       = "base"
	DefaultLanguage    = "es"
	DefaultComputeType = "int8"
	DefaultBatchSize   = 8
	DefaultMinSpeakers = 1
	DefaultMaxSpeakers = 5
	DefaultInfoModel   = "large-v2"
)

// TranscriptionConfig holds per-request WhisperX options. It is never persisted.
type TranscriptionConfig struct {
	Model       string `json:"model" form:"model" validate:"omitempty,max=64,startsnotwith=-"`
	Language    string `json:"language" form:"language" validate:"omitempty,max=16,startsnotwith=-"`
	ComputeType string `json:"compute_type" form:"compute_type" validate:"omitempty,max=32,startsnotwith=-"`
	BatchSize   int    `json:"batch_size" form:"batch_size" validate:"gte=0"`
	Diarize     bool   `json:"diarize" form:"diarize"`
	MinSpeakers int    `json:"min_speakers" form:"min_speakers" validate:"gte=0"`
	MaxSpeakers int    `json:"max_speakers" form:"max_speakers" validate:"gte=0"`
}

// WithDefaults returns a copy where every unset field takes its default value.
func (c TranscriptionConfig) WithDefaults() TranscriptionConfig {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.ComputeType == "" {
		c.ComputeType = DefaultComputeType
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MinSpeakers <= 0 {
		c.MinSpeakers = DefaultMinSpeakers
	}
	if c.MaxSpeakers <= 0 {
		c.MaxSpeakers = DefaultMaxSpeakers
	}
	return c
}

// Word is a word-level timing entry inside a segment. WhisperX omits timings for tokens it
// could not align, so they are optional.
type Word struct {
	Start   *float64 `json:"start,omitempty"`
	End     *float64 `json:"end,omitempty"`
	Word    string   `json:"word"`
	Speaker string   `json:"speaker,omitempty"`
}

// Segment is a timed, optionally speaker-tagged stretch of transcript.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
	Words   []Word  `json:"words,omitempty"`
}

// TranscriptionResult is the normalized output of one WhisperX run.
type TranscriptionResult struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
}

// Speaker role labels.
const (
	SpeakerProfessor = "professor"
	SpeakerStudent   = "student"
)

// SpeakerSummary is one entry of the speaker roster.
type SpeakerSummary struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// SpeakerStats accumulates talk time, segments and words for one speaker.
type SpeakerStats struct {
	Time     float64 `json:"time"`
	Segments int     `json:"segments"`
	Words    int     `json:"words"`
}

// Interaction counts consecutive From -> To speaker turns.
type Interaction struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// ParticipationReport aggregates talk time and turn-taking over a transcript.
type ParticipationReport struct {
	TotalTime           float64                 `json:"totalTime"`
	SpeakerStats        map[string]SpeakerStats `json:"speakerStats"`
	InteractionPatterns []Interaction           `json:"interactionPatterns"`
}

// TranscriptionResponse is the payload returned by the transcribe endpoint.
type TranscriptionResponse struct {
	Transcript    string              `json:"transcript"`
	Segments      []Segment           `json:"segments"`
	Speakers      []SpeakerSummary    `json:"speakers"`
	Language      string              `json:"language"`
	Duration      float64             `json:"duration"`
	Participation ParticipationReport `json:"participation"`
}

// ModelInfo is the outcome of probing the executable for a model's help text.
type ModelInfo struct {
	Available bool   `json:"available"`
	Info      string `json:"info,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DebugInfo exposes the configured executable paths.
type DebugInfo struct {
	WhisperXPath string            `json:"whisperXPath"`
	PythonPath   string            `json:"pythonPath"`
	Environment  map[string]string `json:"environment"`
}
