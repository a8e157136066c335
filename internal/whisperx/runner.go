package whisperx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// Command is one invocation of an external executable.
type Command struct {
	Path string
	Args []string
	Dir  string
}

// CommandResult is what a finished process left behind.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes a command to completion. A non-nil error means the process could not be
// run at all; a process that ran and failed is reported through ExitCode.
type Runner interface {
	Run(ctx context.Context, cmd Command) (CommandResult, error)
}

// DefaultWaitDelay bounds how long Run waits for output pipes once the process has exited or
// its context is done.
const DefaultWaitDelay = 10 * time.Second

// ExecRunner runs commands with os/exec. When Logger is set, stdout and stderr are also
// streamed to it at debug level while the process runs.
type ExecRunner struct {
	Logger *logrus.Logger
	// WaitDelay overrides DefaultWaitDelay when positive.
	WaitDelay time.Duration
}

// Run starts the command and waits for it to exit.
func (r ExecRunner) Run(ctx context.Context, c Command) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = os.Environ()
	cmd.WaitDelay = DefaultWaitDelay
	if r.WaitDelay > 0 {
		cmd.WaitDelay = r.WaitDelay
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if r.Logger != nil {
		entry := r.Logger.WithField("executable", c.Path)
		outLog := entry.WithField("stream", "stdout").WriterLevel(logrus.DebugLevel)
		errLog := entry.WithField("stream", "stderr").WriterLevel(logrus.DebugLevel)
		defer outLog.Close()
		defer errLog.Close()
		cmd.Stdout = io.MultiWriter(&stdout, outLog)
		cmd.Stderr = io.MultiWriter(&stderr, errLog)
	}

	err := cmd.Run()
	result := CommandResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return result, nil
	}

	// A descendant still held the output pipes after the process exited.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	result.ExitCode = -1
	return result, err
}
