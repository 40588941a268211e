package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buildmend",
	Short: "AI-powered autonomous build repair",
	Long: `Buildmend repeatedly builds a project and, when the build fails, asks a
language model to analyze the errors and propose file changes. Proposed
fixes are applied to the working tree and committed, then the build is
retried, up to a bounded number of iterations.

For autonomous operation, try: buildmend run /path/to/project`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
