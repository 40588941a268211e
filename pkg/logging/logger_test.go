package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func TestNew_TimestampNamedLogFile(t *testing.T) {
	chdirTemp(t)

	l := New(nil)
	defer l.Close()
	l.out = bytes.NewBuffer(nil)

	assert.True(t, strings.HasPrefix(filepath.ToSlash(l.Path()), ".buildmend/run-"))
	assert.True(t, strings.HasSuffix(l.Path(), ".log"))
}

func TestLogf_WritesTaggedLineToFile(t *testing.T) {
	chdirTemp(t)

	l := New(nil)
	l.out = bytes.NewBuffer(nil)
	l.Logf(LevelError, "oops %d", 7)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[ERROR] oops 7")
}

func TestLogf_MirrorsToConsole(t *testing.T) {
	var out bytes.Buffer
	l := NewDiscard()
	l.out = &out

	l.Logf(LevelInfo, "hello")

	assert.Contains(t, out.String(), "[INFO] hello")
}

func TestColorize_OnlyWhenTerminal(t *testing.T) {
	l := NewDiscard()

	l.color = false
	assert.Equal(t, "line", l.colorize(LevelError, "line"))

	l.color = true
	assert.Contains(t, l.colorize(LevelError, "line"), "\x1b[31m")
	assert.Equal(t, "line", l.colorize(LevelInfo, "line"))
}

func TestNewDiscard_SafeWithoutFile(t *testing.T) {
	l := NewDiscard()
	assert.NotPanics(t, func() { l.Logf(LevelInfo, "nowhere") })
	assert.NoError(t, l.Close())
}
