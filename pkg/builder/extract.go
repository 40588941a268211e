package builder

import (
	"regexp"
	"strings"
)

// MaxErrors caps the number of distinct error lines extracted from one
// build's output.
const MaxErrors = 20

// errorPatterns match lines emitted by compilers, linkers and build
// systems when something went wrong. Warnings are deliberately excluded.
var errorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)error:`),
	regexp.MustCompile(`(?i)cmake error`),
	regexp.MustCompile(`(?i)fatal error:`),
	regexp.MustCompile(`(?i)undefined reference`),
	regexp.MustCompile(`(?i)no such file or directory`),
	regexp.MustCompile(`(?i)board .* not found`),
}

// ExtractErrors scans raw build output for recognizable error lines and
// returns them deduplicated and capped at MaxErrors. Only membership is
// promised; callers must not rely on any particular ordering. An empty
// result means the failure carried no actionable diagnostic.
func ExtractErrors(output string) []string {
	seen := make(map[string]bool)
	var errs []string

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		for _, pattern := range errorPatterns {
			if pattern.MatchString(line) {
				seen[line] = true
				errs = append(errs, line)
				break
			}
		}
	}

	if len(errs) > MaxErrors {
		errs = errs[:MaxErrors]
	}
	return errs
}
