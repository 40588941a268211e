// Package builder executes the project's build command and extracts
// recognizable error lines from its output.
package builder

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"
)

// BuildTimeout bounds one build attempt's wall-clock duration.
const BuildTimeout = 300 * time.Second

// Result is the outcome of a single build attempt.
type Result struct {
	// ExitCode is the build command's exit status, or -1 when the command
	// timed out or could not be launched.
	ExitCode int

	// Output is the combined stdout and stderr of the command.
	Output string
}

// Succeeded reports whether the build passed.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Runner executes shell commands in a fixed working directory under a
// wall-clock bound.
type Runner struct {
	Dir     string
	Timeout time.Duration
}

// NewRunner returns a runner for the given working directory with the
// standard build timeout.
func NewRunner(dir string) *Runner {
	return &Runner{Dir: dir, Timeout: BuildTimeout}
}

// Run executes command via "sh -c", capturing stdout and stderr into one
// stream. A timeout yields exit code -1 with a timeout message; a launch
// failure yields -1 with the error text as output. Retry policy belongs to
// the caller.
func (r *Runner) Run(command string) Result {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = r.Dir

	var outAndErr bytes.Buffer
	cmd.Stdout = &outAndErr
	cmd.Stderr = &outAndErr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return Result{ExitCode: -1, Output: "command timed out"}
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return Result{ExitCode: exitErr.ExitCode(), Output: outAndErr.String()}
		}
		return Result{ExitCode: -1, Output: err.Error()}
	}
	return Result{ExitCode: 0, Output: outAndErr.String()}
}

// DefaultCommand picks the build invocation when none was configured:
// west when a Zephyr workspace is active, otherwise CMake with Ninja.
func DefaultCommand() string {
	if os.Getenv("ZEPHYR_BASE") != "" {
		return "west build -b qcc748m -p auto"
	}
	return "cmake -B build -GNinja && ninja -C build"
}
