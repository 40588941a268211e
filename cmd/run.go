package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buildmend/buildmend/pkg/advisor"
	"github.com/buildmend/buildmend/pkg/agent"
	"github.com/buildmend/buildmend/pkg/config"
	"github.com/buildmend/buildmend/pkg/logging"
	"github.com/buildmend/buildmend/pkg/notify"
	"github.com/buildmend/buildmend/pkg/workspace"
)

var (
	runMaxIterations int
	runAPIKeyFlag    string
	runWebhookFlag   string
	runBuildCmdFlag  string
	runBuildDirFlag  string
	runModelFlag     string
)

var runCmd = &cobra.Command{
	Use:   "run [project-dir]",
	Short: "Run the autonomous build-repair loop",
	Long: `Runs the build command in the project directory and, on failure, extracts
error lines, asks the configured AI backend for fixes, applies and commits
them, and retries. Exits 0 if a build eventually succeeds, 1 otherwise.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectDir := "."
		if len(args) > 0 {
			projectDir = args[0]
		}
		projectDir, err := filepath.Abs(projectDir)
		if err != nil {
			log.Fatalf("Invalid project directory: %v", err)
		}

		buildDir := runBuildDirFlag
		if buildDir == "" {
			// Mirror the conventional layout: build in the known subproject
			// when it exists, otherwise in the project root.
			if _, statErr := os.Stat(filepath.Join(projectDir, config.DefaultBuildSubdir)); statErr == nil {
				buildDir = config.DefaultBuildSubdir
			}
		}

		cfg := config.Config{
			ProjectDir:    projectDir,
			BuildDir:      buildDir,
			BuildCommand:  runBuildCmdFlag,
			MaxIterations: runMaxIterations,
			APIKey:        config.ResolveAPIKey(runAPIKeyFlag),
			WebhookURL:    config.ResolveWebhook(runWebhookFlag),
			Model:         runModelFlag,
		}

		notifier := notify.NewNotifier(cfg.WebhookURL)
		logger := logging.New(notifier)

		provider := advisor.SelectProvider(cfg.APIKey, cfg.Model)
		adv := advisor.New(provider, logger, func() string {
			return workspace.GatherContext(cfg.ProjectDir, cfg.BuildDir)
		})

		success := agent.New(cfg, logger, adv).Run()
		if err := logger.Close(); err != nil {
			os.Stderr.WriteString("Error closing logger: " + err.Error() + "\n")
		}
		if !success {
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().IntVarP(&runMaxIterations, "max-iterations", "n", config.DefaultMaxIterations, "Maximum fix iterations")
	runCmd.Flags().StringVar(&runAPIKeyFlag, "api-key", "", "AI API key (or set ANTHROPIC_API_KEY/OPENAI_API_KEY)")
	runCmd.Flags().StringVar(&runWebhookFlag, "webhook", "", "Webhook URL for notifications (or set WEBHOOK_URL)")
	runCmd.Flags().StringVar(&runBuildCmdFlag, "build-cmd", "", "Build command to run (default picks west or cmake)")
	runCmd.Flags().StringVar(&runBuildDirFlag, "build-dir", "", "Subdirectory to build in, relative to the project root")
	runCmd.Flags().StringVarP(&runModelFlag, "model", "m", "", "Model name to use with the LLM")
}
