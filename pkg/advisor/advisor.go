// Package advisor asks a language-model backend to analyze build errors
// and propose file-level fixes. Two interchangeable backends are supported,
// selected once at startup from the shape of the credential.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/buildmend/buildmend/pkg/logging"
	"github.com/buildmend/buildmend/pkg/types"
)

// maxPromptErrors caps how many error lines are included in the prompt.
const maxPromptErrors = 10

// Advisor turns build errors plus project context into a FixProposal.
type Advisor struct {
	provider Provider
	logger   *logging.Logger
	gather   func() string
}

// New creates an advisor. A nil provider disables the stage: AskForFix
// then always reports "no proposal". gather supplies the bounded project
// context excerpt and is only invoked when a request will actually be sent.
func New(provider Provider, logger *logging.Logger, gather func() string) *Advisor {
	if gather == nil {
		gather = func() string { return "" }
	}
	return &Advisor{provider: provider, logger: logger, gather: gather}
}

// AskForFix requests a fix proposal for the given error lines. Every
// failure mode (no credential, transport error, timeout, unparseable
// reply) is logged and collapses to a nil proposal; the caller treats that
// as "skip this iteration", never as a fatal error.
func (a *Advisor) AskForFix(ctx context.Context, buildErrors []string) *types.FixProposal {
	if a.provider == nil {
		a.logger.Logf(logging.LevelWarning, "⚠️ No API key provided, skipping AI analysis")
		return nil
	}

	a.logger.Logf(logging.LevelAI, "🤖 Consulting AI for fix suggestions...")

	prompt := BuildPrompt(a.gather(), buildErrors)

	reply, err := a.provider.Complete(ctx, prompt)
	if err != nil {
		a.logger.Logf(logging.LevelError, "❌ AI API call failed: %v", err)
		return nil
	}

	proposal, err := ParseProposal(reply)
	if err != nil {
		a.logger.Logf(logging.LevelError, "❌ AI response unusable: %v", err)
		return nil
	}

	a.logger.Logf(logging.LevelAI, "✅ AI provided %d fix suggestions", len(proposal.Fixes))
	return proposal
}

// BuildPrompt assembles the single user-role prompt: bounded project
// context, up to maxPromptErrors error lines, and instructions asking for
// a JSON-encoded proposal.
func BuildPrompt(projectContext string, buildErrors []string) string {
	if len(buildErrors) > maxPromptErrors {
		buildErrors = buildErrors[:maxPromptErrors]
	}

	return fmt.Sprintf(`I'm trying to build a Zephyr RTOS project and encountering errors.

Project context:
%s

Build errors:
%s

Please analyze these errors and provide:
1. A brief explanation of what's wrong
2. Specific file changes needed to fix the issue (as a JSON array)

Format your response as JSON:
{
    "explanation": "...",
    "fixes": [
        {
            "file": "path/to/file",
            "action": "create|modify|delete",
            "content": "new file content or modification"
        }
    ]
}
`, projectContext, strings.Join(buildErrors, "\n"))
}

// ParseProposal extracts the first balanced JSON object from the model's
// free-text reply and decodes it as a FixProposal.
func ParseProposal(reply string) (*types.FixProposal, error) {
	raw, ok := extractJSON(reply)
	if !ok {
		return nil, errors.New("no JSON object found in response")
	}
	var proposal types.FixProposal
	if err := json.Unmarshal([]byte(raw), &proposal); err != nil {
		return nil, fmt.Errorf("failed to decode proposal JSON: %w", err)
	}
	return &proposal, nil
}

// extractJSON returns the first balanced brace-delimited object in s,
// tracking string literals and escapes so braces inside strings don't
// unbalance the scan.
func extractJSON(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
