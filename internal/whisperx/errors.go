package whisperx

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound is returned before anything is spawned when the audio file is missing.
	ErrInputNotFound = errors.New("audio file not found")
	// ErrResultNotFound means the process succeeded but wrote no recognizable JSON file.
	ErrResultNotFound = errors.New("transcription result file not found")
	// ErrResultParse means the result file is not valid JSON of the expected shape.
	ErrResultParse = errors.New("transcription result could not be parsed")
	// ErrTranscriptionProcess matches every *ProcessError through errors.Is.
	ErrTranscriptionProcess = errors.New("whisperx process failed")
)

// ProcessError reports a WhisperX process that could not start (Err set, ExitCode -1) or
// that exited with a nonzero code.
type ProcessError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to start whisperx process: %v", e.Err)
	}
	return fmt.Sprintf("whisperx process exited with code %d. Stderr: %s", e.ExitCode, e.Stderr)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

func (e *ProcessError) Is(target error) bool {
	return target == ErrTranscriptionProcess
}
