package toolrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/fescan-dev/fescan/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Result holds the captured output of one external tool invocation
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes one external analysis tool and captures its output.
// Analysis tools conventionally exit non-zero when they find problems,
// so a non-zero exit code is part of the Result, not an error; the
// returned error is reserved for failures to launch or drain the tool.
type Runner interface {
	Run(ctx context.Context, tool string, args []string, dir string) (*Result, error)
}

// ExecRunner runs tools as subprocesses
type ExecRunner struct{}

// NewExecRunner creates a subprocess-backed runner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run launches the tool and fully drains stdout and stderr before
// inspecting the exit code. Both streams are drained concurrently so a
// tool that fills one pipe while we read the other cannot deadlock.
// There is deliberately no timeout here: a hung tool blocks the run
// (see the health command help for this documented limitation).
func (r *ExecRunner) Run(ctx context.Context, tool string, args []string, dir string) (*Result, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = dir

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe for %s: %w", tool, err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe for %s: %w", tool, err)
	}

	logging.L().Debugw("running tool", "tool", tool, "args", args)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", tool, err)
	}

	var stdout, stderr bytes.Buffer
	g := new(errgroup.Group)
	g.Go(func() error {
		_, err := io.Copy(&stdout, stdoutPipe)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&stderr, stderrPipe)
		return err
	})

	drainErr := g.Wait()
	waitErr := cmd.Wait()

	if drainErr != nil {
		return nil, fmt.Errorf("failed to drain %s output: %w", tool, drainErr)
	}

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			return nil, fmt.Errorf("%s did not run: %w", tool, waitErr)
		}
	}

	logging.L().Debugw("tool finished", "tool", tool, "exit_code", result.ExitCode,
		"stdout_bytes", stdout.Len(), "stderr_bytes", stderr.Len())

	return result, nil
}

// FakeRunner returns canned results keyed by tool name; used in tests
// and available to embedders that capture tool output out of band.
type FakeRunner struct {
	Results map[string]*Result
	Errs    map[string]error

	// Calls records each invocation as "tool arg1 arg2 ..."
	Calls []string
}

// NewFakeRunner creates an empty fake runner
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Results: make(map[string]*Result),
		Errs:    make(map[string]error),
	}
}

// Run returns the canned result registered for the tool
func (r *FakeRunner) Run(_ context.Context, tool string, args []string, _ string) (*Result, error) {
	call := tool
	for _, arg := range args {
		call += " " + arg
	}
	r.Calls = append(r.Calls, call)

	if err, ok := r.Errs[tool]; ok {
		return nil, err
	}
	if result, ok := r.Results[tool]; ok {
		return result, nil
	}
	return &Result{}, nil
}
