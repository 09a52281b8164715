// Package runner executes the groupmaker CLI as a child process and captures
// its output for the dashboard.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// Result captures one CLI invocation. Success means exit code 0.
type Result struct {
	Success bool
	Stdout  string
	Stderr  string
}

// Diagnostic returns the most useful error text from a failed invocation.
func (r Result) Diagnostic(fallback string) string {
	if r.Stderr != "" {
		return r.Stderr
	}
	if r.Stdout != "" {
		return r.Stdout
	}
	return fallback
}

// Runner invokes a CLI binary synchronously with a per-call timeout.
type Runner struct {
	// Path to the CLI binary.
	Path string
	// BaseArgs are prepended to every invocation, e.g. the --config flag so
	// subprocesses read the same settings file as the dashboard.
	BaseArgs []string
	// Timeout bounds each invocation; zero means DefaultTimeout.
	Timeout time.Duration
	// EnvFunc, when set, supplies KEY=VALUE entries appended to the
	// inherited environment. It is called once per invocation so that
	// freshly resolved credentials take effect without a restart.
	EnvFunc func() []string
}

// DefaultTimeout bounds CLI invocations when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// Run executes the CLI with the given arguments and waits for it to exit.
// A non-zero exit code is reported through Result, not as an error; only
// failures to run at all (timeout, missing binary) return an error.
func (r *Runner) Run(ctx context.Context, args ...string) (Result, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	argv := append(append([]string{}, r.BaseArgs...), args...)
	cmd := exec.CommandContext(ctx, r.Path, argv...)
	cmd.Env = os.Environ()
	if r.EnvFunc != nil {
		cmd.Env = append(cmd.Env, r.EnvFunc()...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logrus.WithField("args", args).Debug("running CLI")
	err := cmd.Run()

	result := Result{
		Success: err == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}

	if ctx.Err() == context.DeadlineExceeded {
		msg := fmt.Sprintf("Command timed out after %d seconds", int(timeout.Seconds()))
		logrus.WithField("args", args).Error(msg)
		return Result{Stderr: msg}, errors.New(msg)
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		logrus.WithError(err).Error("CLI execution failed")
		return Result{Stderr: err.Error()}, err
	}

	return result, nil
}
