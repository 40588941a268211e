// Package apply writes AI-proposed file actions into the working tree.
package apply

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/buildmend/buildmend/pkg/logging"
	"github.com/buildmend/buildmend/pkg/types"
)

// maxDiffLog caps the diff text written to the run log for one modify.
const maxDiffLog = 2000

// Applicator applies fix actions relative to the project root.
type Applicator struct {
	root   string
	logger *logging.Logger
}

// New creates an applicator rooted at the project directory.
func New(root string, logger *logging.Logger) *Applicator {
	return &Applicator{root: root, logger: logger}
}

// Apply executes each action in order and stops at the first filesystem
// error. Actions applied before the failing one are deliberately left in
// place: the tree stays in whatever mixed state the failure produced and
// the next build attempt runs against it as-is. An empty sequence is a
// successful no-op.
func (a *Applicator) Apply(fixes []types.FixAction) error {
	for _, fix := range fixes {
		if err := a.applyOne(fix); err != nil {
			a.logger.Logf(logging.LevelError, "  ❌ Failed to %s %s: %v", fix.Action, fix.File, err)
			return err
		}
	}
	return nil
}

func (a *Applicator) applyOne(fix types.FixAction) error {
	path := filepath.Join(a.root, fix.File)

	switch fix.Action {
	case types.ActionCreate, types.ActionModify:
		a.logDiff(path, fix)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(fix.Content), 0644); err != nil {
			return err
		}
		a.logger.Logf(logging.LevelFix, "  ✅ %s: %s", fix.Action, fix.File)
	case types.ActionDelete:
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		a.logger.Logf(logging.LevelFix, "  ✅ deleted: %s", fix.File)
	default:
		return fmt.Errorf("unknown action %q", fix.Action)
	}
	return nil
}

// logDiff records a patch of what a modify is about to change. Best-effort:
// unreadable targets (including new files) are skipped.
func (a *Applicator) logDiff(path string, fix types.FixAction) {
	if fix.Action != types.ActionModify {
		return
	}
	old, err := os.ReadFile(path)
	if err != nil {
		return
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(old), fix.Content, false)
	patch := dmp.PatchToText(dmp.PatchMake(string(old), diffs))
	if len(patch) > maxDiffLog {
		patch = patch[:maxDiffLog] + "\n... (diff truncated)"
	}
	a.logger.Logf(logging.LevelFix, "  diff for %s:\n%s", fix.File, patch)
}
