// Package whisperx runs the WhisperX command-line tool and normalizes the JSON it writes.
package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"mentorai/backend/models"
)

// Options configures a Service.
type Options struct {
	// ExecutablePath is the whisperx binary (or the name to look up on PATH).
	ExecutablePath string
	// PythonPath is the interpreter of the whisperx environment. Only reported by DebugInfo.
	PythonPath string
	// HFToken is forwarded as --hf_token when diarization is requested.
	HFToken string
	// TempDir is where per-run working directories are created. Defaults to os.TempDir().
	TempDir string
	// Runner executes the process. Defaults to ExecRunner.
	Runner Runner
}

// Service wraps the WhisperX executable.
type Service struct {
	opts   Options
	runner Runner
	logger *logrus.Logger
}

// NewService creates a Service.
func NewService(opts Options, logger *logrus.Logger) *Service {
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner{Logger: logger}
	}
	return &Service{opts: opts, runner: runner, logger: logger}
}

// Transcribe runs WhisperX on audioPath and returns the normalized result. The working
// directory it creates is removed before returning, whatever the outcome.
func (s *Service) Transcribe(ctx context.Context, audioPath string, cfg models.TranscriptionConfig) (*models.TranscriptionResult, error) {
	if fi, err := os.Stat(audioPath); err != nil || fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, audioPath)
	}

	cfg = cfg.WithDefaults()

	tempDir, err := os.MkdirTemp(s.opts.TempDir, "whisperx-")
	if err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}
	defer s.cleanup(tempDir)

	args := s.buildArgs(audioPath, tempDir, cfg)
	log := s.logger.WithFields(logrus.Fields{
		"audio":       filepath.Base(audioPath),
		"model":       cfg.Model,
		"language":    cfg.Language,
		"diarize":     cfg.Diarize,
		"working_dir": tempDir,
	})
	if cfg.Diarize && s.opts.HFToken == "" {
		log.Warn("No Hugging Face token configured, diarization may fail")
	}
	log.Info("Executing WhisperX")

	res, err := s.runner.Run(ctx, Command{Path: s.opts.ExecutablePath, Args: args, Dir: tempDir})
	if err != nil {
		log.WithError(err).Error("Failed to start WhisperX process")
		return nil, &ProcessError{ExitCode: -1, Stderr: res.Stderr, Err: err}
	}
	if res.ExitCode != 0 {
		log.WithField("exit_code", res.ExitCode).Error("WhisperX process failed")
		return nil, &ProcessError{ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	result, err := readResult(tempDir, audioPath)
	if err != nil {
		log.WithError(err).Error("Error reading WhisperX output")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"segments":          len(result.Segments),
		"detected_language": result.Language,
	}).Info("WhisperX transcription completed")
	return result, nil
}

func (s *Service) buildArgs(audioPath, outputDir string, cfg models.TranscriptionConfig) []string {
	args := []string{
		audioPath,
		"--model", cfg.Model,
		"--language", cfg.Language,
		"--compute_type", cfg.ComputeType,
		"--batch_size", strconv.Itoa(cfg.BatchSize),
		"--output_dir", outputDir,
		"--output_format", "json",
	}
	if cfg.Diarize {
		args = append(args,
			"--diarize",
			"--min_speakers", strconv.Itoa(cfg.MinSpeakers),
			"--max_speakers", strconv.Itoa(cfg.MaxSpeakers),
		)
		if s.opts.HFToken != "" {
			args = append(args, "--hf_token", s.opts.HFToken)
		}
	}
	return args
}

func (s *Service) cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		s.logger.WithError(err).WithField("dir", dir).Warn("Failed to cleanup temp files")
	}
}

// CheckAvailability reports whether `whisperx --version` runs and exits zero.
func (s *Service) CheckAvailability(ctx context.Context) bool {
	res, err := s.runner.Run(ctx, Command{Path: s.opts.ExecutablePath, Args: []string{"--version"}})
	if err != nil {
		s.logger.WithError(err).Warn("WhisperX not available")
		return false
	}
	if res.ExitCode != 0 {
		s.logger.WithField("exit_code", res.ExitCode).Warn("WhisperX not available")
		return false
	}
	return true
}

// ModelInfo returns the help output of whisperx for the given model.
func (s *Service) ModelInfo(ctx context.Context, model string) models.ModelInfo {
	if model == "" {
		model = models.DefaultInfoModel
	}
	res, err := s.runner.Run(ctx, Command{
		Path: s.opts.ExecutablePath,
		Args: []string{"--model", model, "--help"},
	})
	if err != nil {
		return models.ModelInfo{Available: false, Error: err.Error()}
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = fmt.Sprintf("whisperx exited with code %d", res.ExitCode)
		}
		return models.ModelInfo{Available: false, Error: msg}
	}
	return models.ModelInfo{Available: true, Info: res.Stdout}
}

// DebugInfo reports the configured paths and the environment they came from.
func (s *Service) DebugInfo() models.DebugInfo {
	return models.DebugInfo{
		WhisperXPath: s.opts.ExecutablePath,
		PythonPath:   s.opts.PythonPath,
		Environment: map[string]string{
			"PYTHON_PATH":   os.Getenv("PYTHON_PATH"),
			"WHISPERX_PATH": os.Getenv("WHISPERX_PATH"),
			"APP_ENV":       os.Getenv("APP_ENV"),
		},
	}
}

type rawWord struct {
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Word    string   `json:"word"`
	Speaker string   `json:"speaker"`
}

type rawSegment struct {
	Start   float64   `json:"start"`
	End     float64   `json:"end"`
	Text    string    `json:"text"`
	Speaker string    `json:"speaker"`
	Words   []rawWord `json:"words"`
}

type rawOutput struct {
	Segments []rawSegment `json:"segments"`
	Language string       `json:"language"`
	Duration float64      `json:"duration"`
}

// resultCandidates lists, in lookup order, the file names WhisperX may have written.
func resultCandidates(dir, audioPath string) []string {
	base := filepath.Base(audioPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return []string{
		filepath.Join(dir, base+".json"),
		filepath.Join(dir, "transcription.json"),
		filepath.Join(dir, "segments.json"),
	}
}

func readResult(dir, audioPath string) (*models.TranscriptionResult, error) {
	var path string
	for _, candidate := range resultCandidates(dir, audioPath) {
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			path = candidate
			break
		}
	}
	if path == "" {
		return nil, ErrResultNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	var raw rawOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResultParse, err)
	}
	return normalize(raw), nil
}

func normalize(raw rawOutput) *models.TranscriptionResult {
	segments := make([]models.Segment, 0, len(raw.Segments))
	for _, rs := range raw.Segments {
		seg := models.Segment{
			Start:   rs.Start,
			End:     rs.End,
			Text:    rs.Text,
			Speaker: rs.Speaker,
		}
		if rs.Words != nil {
			seg.Words = make([]models.Word, 0, len(rs.Words))
			for _, rw := range rs.Words {
				seg.Words = append(seg.Words, models.Word{
					Start:   rw.Start,
					End:     rw.End,
					Word:    rw.Word,
					Speaker: rw.Speaker,
				})
			}
		}
		segments = append(segments, seg)
	}

	language := raw.Language
	if language == "" {
		language = "unknown"
	}
	return &models.TranscriptionResult{
		Segments: segments,
		Language: language,
		Duration: raw.Duration,
	}
}
