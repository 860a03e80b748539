package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	sh "github.com/codeskyblue/go-sh"
	"github.com/shamanec/umdb/logger"
)

// ErrTimeout is returned when a process did not finish before its timeout elapsed.
// The process is killed before the error is returned.
var ErrTimeout = errors.New("process timed out")

const killWaitDelay = 500 * time.Millisecond

// SpawnError means the OS could not start the process at all
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not run `%s` - %s", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Output of a finished process. A non-zero ExitCode is not treated as an error here,
// callers decide what a status code means for them.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

func (o *Output) Success() bool {
	return o.ExitCode == 0
}

type Runner interface {
	// Run executes name with args. A zero timeout means no timeout.
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (*Output, error)
}

// ShellRunner runs commands through go-sh sessions
type ShellRunner struct{}

func NewShellRunner() *ShellRunner {
	return &ShellRunner{}
}

func (r *ShellRunner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (*Output, error) {
	var stdout, stderr bytes.Buffer

	session := sh.NewSession()
	session.Stdout = &stdout
	session.Stderr = &stderr
	session.Command(name, sessionArgs(args)...)

	logger.UmdbLogger.LogDebug("process_run", fmt.Sprintf("Running `%s` with args %v", name, args))

	if err := session.Start(); err != nil {
		return nil, &SpawnError{Name: name, Err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	var timeoutC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timeoutC = timer.C
	}

	select {
	case err := <-done:
		return finishedOutput(name, stdout.Bytes(), stderr.Bytes(), err)
	case <-timeoutC:
		kill(session, name, done)
		logger.UmdbLogger.LogWarn("process_run", fmt.Sprintf("`%s` %v did not finish in %v and was killed", name, args, timeout))
		return nil, ErrTimeout
	case <-ctx.Done():
		kill(session, name, done)
		return nil, ctx.Err()
	}
}

// Kill the child and wait at most killWaitDelay for its pipes to close.
// Descendants that inherited stdout would otherwise hold Wait open.
func kill(session *sh.Session, name string, done <-chan error) {
	session.Kill(os.Kill)
	select {
	case <-done:
	case <-time.After(killWaitDelay):
		logger.UmdbLogger.LogWarn("process_run", fmt.Sprintf("`%s` output is still held open after kill, not waiting for it", name))
	}
}

func finishedOutput(name string, stdout, stderr []byte, err error) (*Output, error) {
	output := &Output{Stdout: stdout, Stderr: stderr}
	if err == nil {
		return output, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		output.ExitCode = exitErr.ExitCode()
		return output, nil
	}

	return nil, &SpawnError{Name: name, Err: err}
}

func sessionArgs(args []string) []interface{} {
	result := make([]interface{}, len(args))
	for i, arg := range args {
		result[i] = arg
	}
	return result
}
