// Package config holds the immutable run configuration assembled from CLI
// flags and environment fallbacks.
package config

import "os"

const (
	// DefaultMaxIterations bounds the repair loop when no flag is given.
	DefaultMaxIterations = 5

	// DefaultBuildSubdir is the conventional location of the buildable
	// project inside the repository, used when it exists and no --build-dir
	// was given.
	DefaultBuildSubdir = "zephyr-gpio-blinky"
)

// Config is the run configuration for one agent invocation. It is built
// once at startup and passed explicitly to each stage; nothing in it
// changes during the run.
type Config struct {
	// ProjectDir is the repository root all fix actions are relative to.
	ProjectDir string

	// BuildDir is the subdirectory of ProjectDir the build command runs
	// in; empty means ProjectDir itself.
	BuildDir string

	// BuildCommand overrides the default build invocation when set.
	BuildCommand string

	MaxIterations int

	// APIKey authenticates to the model backend. Its shape selects the
	// backend family; empty disables the advisor entirely.
	APIKey string

	// WebhookURL enables best-effort status notifications when set.
	WebhookURL string

	// Model overrides the backend's default model identifier.
	Model string
}

// ResolveAPIKey returns the flag value if set, otherwise the first of
// ANTHROPIC_API_KEY and OPENAI_API_KEY found in the environment.
func ResolveAPIKey(flag string) string {
	if flag != "" {
		return flag
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENAI_API_KEY")
}

// ResolveWebhook returns the flag value if set, otherwise WEBHOOK_URL from
// the environment.
func ResolveWebhook(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("WEBHOOK_URL")
}
