// Package workspace gathers the bounded project-context excerpt included
// in fix prompts.
package workspace

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// maxExcerpt caps the bytes taken from each context file so prompt size
// stays bounded.
const maxExcerpt = 1000

// wellKnownFiles are always offered to the model when present, relative to
// the build directory.
var wellKnownFiles = []string{
	"CMakeLists.txt",
	"prj.conf",
	filepath.Join("boards", "qcc748m.overlay"),
	filepath.Join("src", "main.c"),
}

// manifestNames are build manifests picked up by the shallow project-root
// scan, so non-Zephyr projects still get usable context.
var manifestNames = map[string]bool{
	"CMakeLists.txt": true,
	"Makefile":       true,
	"prj.conf":       true,
	"west.yml":       true,
	"Kconfig":        true,
}

// GatherContext collects truncated excerpts of the well-known project
// files plus any top-level build manifests not excluded by .gitignore.
// Missing files are silently omitted.
func GatherContext(projectDir, buildDir string) string {
	var b strings.Builder
	seen := make(map[string]bool)

	for _, rel := range wellKnownFiles {
		appendExcerpt(&b, projectDir, filepath.Join(buildDir, rel), seen)
	}

	rules := ignoreRules(projectDir)
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return b.String()
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !manifestNames[name] {
			continue
		}
		if rules != nil && rules.MatchesPath(name) {
			continue
		}
		appendExcerpt(&b, projectDir, name, seen)
	}

	return b.String()
}

func appendExcerpt(b *strings.Builder, root, rel string, seen map[string]bool) {
	if seen[rel] {
		return
	}
	seen[rel] = true

	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return
	}
	if len(data) > maxExcerpt {
		data = data[:maxExcerpt]
	}
	fmt.Fprintf(b, "\n--- %s ---\n", filepath.ToSlash(rel))
	b.Write(data)
}

// ignoreRules loads the project's .gitignore, or nil when there is none.
func ignoreRules(root string) *ignore.GitIgnore {
	file, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(lines...)
}
