package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildmend/buildmend/pkg/logging"
	"github.com/buildmend/buildmend/pkg/types"
)

func newTestApplicator(t *testing.T) (*Applicator, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, logging.NewDiscard()), dir
}

func TestApply_CreateWritesFileAndParents(t *testing.T) {
	a, dir := newTestApplicator(t)

	err := a.Apply([]types.FixAction{
		{File: filepath.Join("src", "new.c"), Action: types.ActionCreate, Content: "int main(void) { return 0; }"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "src", "new.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main(void) { return 0; }", string(data))
}

func TestApply_ModifyOverwrites(t *testing.T) {
	a, dir := newTestApplicator(t)
	path := filepath.Join(dir, "prj.conf")
	require.NoError(t, os.WriteFile(path, []byte("CONFIG_GPIO=n\n"), 0644))

	err := a.Apply([]types.FixAction{
		{File: "prj.conf", Action: types.ActionModify, Content: "CONFIG_GPIO=y\n"},
	})
	require.NoError(t, err)

	data, _ := os.ReadFile(path)
	assert.Equal(t, "CONFIG_GPIO=y\n", string(data))
}

func TestApply_DeleteRemovesFile(t *testing.T) {
	a, dir := newTestApplicator(t)
	path := filepath.Join(dir, "stale.c")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := a.Apply([]types.FixAction{{File: "stale.c", Action: types.ActionDelete}})
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestApply_DeleteMissingIsNoop(t *testing.T) {
	a, _ := newTestApplicator(t)
	assert.NoError(t, a.Apply([]types.FixAction{{File: "never-existed.c", Action: types.ActionDelete}}))
}

func TestApply_EmptySequenceIsNoopSuccess(t *testing.T) {
	a, _ := newTestApplicator(t)
	assert.NoError(t, a.Apply(nil))
	assert.NoError(t, a.Apply([]types.FixAction{}))
}

func TestApply_StopsAtFirstErrorWithoutRollback(t *testing.T) {
	a, dir := newTestApplicator(t)

	// The second action tries to use a regular file as a directory, which
	// fails at MkdirAll.
	err := a.Apply([]types.FixAction{
		{File: "first.txt", Action: types.ActionCreate, Content: "applied"},
		{File: filepath.Join("first.txt", "child.txt"), Action: types.ActionCreate, Content: "never"},
		{File: "third.txt", Action: types.ActionCreate, Content: "never"},
	})
	require.Error(t, err)

	// The first edit persists; the third was never attempted.
	data, readErr := os.ReadFile(filepath.Join(dir, "first.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "applied", string(data))

	_, statErr := os.Stat(filepath.Join(dir, "third.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApply_UnknownActionFails(t *testing.T) {
	a, _ := newTestApplicator(t)
	err := a.Apply([]types.FixAction{{File: "x", Action: "rename"}})
	assert.Error(t, err)
}
