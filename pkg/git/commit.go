// Package git records applied fixes as commits by shelling out to the git
// command line, which is assumed to be available.
package git

import (
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	committerName  = "AI Build Agent"
	committerEmail = "ai-agent@localhost"

	// commitTimeout guards against a hook or lock wedging the commit.
	commitTimeout = 30 * time.Second
)

// CommitFixes stages every change under dir and commits it, tagging the
// message with the iteration number and the AI's explanation. The
// committer identity is fixed and set on the repository before committing.
func CommitFixes(dir string, iteration int, explanation string) error {
	if err := run(dir, "config", "user.name", committerName); err != nil {
		return err
	}
	if err := run(dir, "config", "user.email", committerEmail); err != nil {
		return err
	}
	if err := run(dir, "add", "."); err != nil {
		return err
	}

	message := fmt.Sprintf("🤖 AI-powered fix (iteration %d)\n\n%s\n\nAuto-generated by AI build agent", iteration, explanation)
	return commit(dir, message)
}

func run(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s failed: %v: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func commit(dir, message string) error {
	cmd := exec.Command("git", "commit", "-m", message)
	cmd.Dir = dir

	done := make(chan error, 1)
	go func() { done <- cmd.Run() }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("error committing changes to git: %v", err)
		}
	case <-time.After(commitTimeout):
		_ = cmd.Process.Kill()
		return fmt.Errorf("git commit timed out after %s", commitTimeout)
	}
	return nil
}
