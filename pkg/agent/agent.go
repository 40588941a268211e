// Package agent drives the build-repair loop: build, diagnose, advise,
// apply, record, bounded by the iteration budget.
package agent

import (
	"context"
	"path/filepath"
	"time"

	"github.com/buildmend/buildmend/pkg/advisor"
	"github.com/buildmend/buildmend/pkg/apply"
	"github.com/buildmend/buildmend/pkg/builder"
	"github.com/buildmend/buildmend/pkg/config"
	"github.com/buildmend/buildmend/pkg/git"
	"github.com/buildmend/buildmend/pkg/logging"
)

// iterationPause separates one iteration's fix attempt from the next
// build, so rate-limited backends aren't hammered.
const iterationPause = 2 * time.Second

// Agent owns the run state: the immutable configuration and the monotone
// iteration counter.
type Agent struct {
	cfg     config.Config
	logger  *logging.Logger
	runner  *builder.Runner
	advisor *advisor.Advisor
	applier *apply.Applicator

	pause     time.Duration
	iteration int
}

// New wires an agent from the run configuration. The build command runs in
// the build subdirectory when one is configured, otherwise in the project
// root; fix actions always resolve against the project root.
func New(cfg config.Config, logger *logging.Logger, adv *advisor.Advisor) *Agent {
	buildDir := cfg.ProjectDir
	if cfg.BuildDir != "" {
		buildDir = filepath.Join(cfg.ProjectDir, cfg.BuildDir)
	}
	return &Agent{
		cfg:     cfg,
		logger:  logger,
		runner:  builder.NewRunner(buildDir),
		advisor: adv,
		applier: apply.New(cfg.ProjectDir, logger),
		pause:   iterationPause,
	}
}

// Run executes build-repair iterations until a build passes or the budget
// is exhausted. It reports whether a build eventually succeeded; no
// failure inside an iteration is fatal to the run.
func (a *Agent) Run() bool {
	a.logger.Logf(logging.LevelInfo, "🤖 AI-Powered Build Agent starting...")
	a.logger.Logf(logging.LevelInfo, "📋 Log file: %s", a.logger.Path())
	a.logger.Logf(logging.LevelInfo, "🔄 Max iterations: %d", a.cfg.MaxIterations)

	for a.iteration < a.cfg.MaxIterations {
		a.iteration++
		a.logger.SetIteration(a.iteration)
		a.logger.Logf(logging.LevelInfo, "--- Iteration %d/%d ---", a.iteration, a.cfg.MaxIterations)

		if a.runIteration() {
			a.logger.Logf(logging.LevelSuccess, "🎉 Build successful on iteration %d!", a.iteration)
			return true
		}
	}

	a.logger.Logf(logging.LevelError, "❌ Failed to build after %d iterations", a.cfg.MaxIterations)
	a.logger.Logf(logging.LevelInfo, "📄 Review log: %s", a.logger.Path())
	return false
}

// runIteration performs one pass of the state machine and reports whether
// the build passed.
func (a *Agent) runIteration() bool {
	result := a.attemptBuild()
	if result.Succeeded() {
		return true
	}
	a.logger.Logf(logging.LevelError, "❌ Build failed")

	buildErrors := builder.ExtractErrors(result.Output)
	if len(buildErrors) == 0 {
		a.logger.Logf(logging.LevelWarning, "⚠️ Build failed but no errors extracted")
		return false
	}

	proposal := a.advisor.AskForFix(context.Background(), buildErrors)
	if proposal == nil {
		a.logger.Logf(logging.LevelWarning, "⚠️ No AI fix suggestions available")
		return false
	}

	a.logger.Logf(logging.LevelAI, "💡 AI: %s", proposal.Explanation)
	a.logger.Logf(logging.LevelFix, "🔧 Applying %d AI-suggested fixes...", len(proposal.Fixes))

	if err := a.applier.Apply(proposal.Fixes); err != nil {
		a.logger.Logf(logging.LevelError, "❌ Failed to apply some fixes")
	} else {
		a.record(proposal.Explanation)
	}

	time.Sleep(a.pause)
	return false
}

func (a *Agent) attemptBuild() builder.Result {
	a.logger.Logf(logging.LevelBuild, "🔨 Attempting build (iteration %d/%d)...", a.iteration, a.cfg.MaxIterations)

	command := a.cfg.BuildCommand
	if command == "" {
		command = builder.DefaultCommand()
	}

	result := a.runner.Run(command)
	if result.Succeeded() {
		a.logger.Logf(logging.LevelSuccess, "✅ Build successful!")
	}
	return result
}

// record commits the applied fixes. Commit failures are logged only; the
// next build runs against whatever state the tree is actually in.
func (a *Agent) record(explanation string) {
	a.logger.Logf(logging.LevelInfo, "📝 Committing fixes...")
	if err := git.CommitFixes(a.cfg.ProjectDir, a.iteration, explanation); err != nil {
		a.logger.Logf(logging.LevelError, "❌ Commit failed: %v", err)
		return
	}
	a.logger.Logf(logging.LevelSuccess, "✅ Fixes committed")
}
