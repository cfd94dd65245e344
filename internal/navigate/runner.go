package navigate

import (
	"context"
	"os/exec"
	"time"
)

// DefaultLaunchTimeout bounds how long a URL handler may run. Handlers
// normally hand the URL to a browser and exit at once.
const DefaultLaunchTimeout = 10 * time.Second

// CommandRunner runs a URL handler and returns its combined output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner launches handlers as child processes.
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner creates an ExecRunner with DefaultLaunchTimeout.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{timeout: DefaultLaunchTimeout}
}

// Run starts name and waits for it to exit. Stdout and stderr are returned
// together so a failing handler's message reaches the caller.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return execCommand(ctx, name, args...).CombinedOutput()
}

// handlerCmd is the part of exec.Cmd the runner uses.
type handlerCmd interface {
	CombinedOutput() ([]byte, error)
}

// execCommand is swapped out in tests.
var execCommand = func(ctx context.Context, name string, args ...string) handlerCmd {
	return exec.CommandContext(ctx, name, args...)
}
