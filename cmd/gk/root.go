package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/console"
)

var (
	// Global flags
	dryRun  bool
	jsonOut bool
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gk",
	Short: "Goal-Driven Development scaffolding CLI",
	Long: `gk scaffolds and maintains Goal-Driven Development projects.

A project is a git repository with a .goalkit/ directory holding a vision
document, numbered goal directories, and per-goal planning documents. Each
goal gets its own branch, and gk keeps agent context files (CLAUDE.md and
friends) regenerated from project state.

Typical flow:
  gk init                      Initialize a project
  gk goal new <description>    Create a numbered goal and its branch
  gk strategies                Scaffold strategies.md for the current goal
  gk milestones                Scaffold milestones.md
  gk execution                 Scaffold execution.md (requires the above)
  gk context update            Regenerate agent context files

Orchestrators drive gk with --json, which emits computed paths on stdout
and never mutates the working tree.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		console.SetVerbose(verbose)
	},
}

// Execute runs the root command and maps any error to exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		console.Errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show what would happen without writing or committing anything")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit computed paths as a single-line JSON object and exit before writing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}
