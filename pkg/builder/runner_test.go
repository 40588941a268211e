package builder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRun_Success(t *testing.T) {
	r := NewRunner(t.TempDir())
	result := r.Run("echo hello")

	assert.True(t, result.Succeeded())
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Output, "hello")
}

func TestRun_FailureCapturesCombinedOutput(t *testing.T) {
	r := NewRunner(t.TempDir())
	result := r.Run("echo out; echo boom >&2; exit 3")

	assert.False(t, result.Succeeded())
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Output, "out")
	assert.Contains(t, result.Output, "boom")
}

func TestRun_Timeout(t *testing.T) {
	r := NewRunner(t.TempDir())
	r.Timeout = 100 * time.Millisecond

	result := r.Run("sleep 5")

	assert.Equal(t, -1, result.ExitCode)
	assert.Contains(t, result.Output, "timed out")
}

func TestRun_RunsInDir(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(dir)

	result := r.Run("pwd")

	assert.True(t, result.Succeeded())
	assert.Contains(t, result.Output, dir)
}

func TestDefaultCommand(t *testing.T) {
	t.Setenv("ZEPHYR_BASE", "")
	assert.Contains(t, DefaultCommand(), "cmake")

	t.Setenv("ZEPHYR_BASE", "/opt/zephyr")
	assert.Contains(t, DefaultCommand(), "west build")
}
