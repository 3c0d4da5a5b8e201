package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/goal"
)

var pathsGoalRef string

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Emit the current goal's computed paths as JSON",
	Long: `Print the path set for the current goal as a single-line JSON object.
This is the machine contract for orchestrators driving gk; nothing is
written or committed. The current goal is resolved from the checked-out
branch, or named with --goal.`,
	Args: cobra.NoArgs,
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().StringVar(&pathsGoalRef, "goal", "", "Goal to resolve (number, slug, or NNN-slug)")
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}
	g, err := resolveGoal(cmd.Context(), p, pathsGoalRef)
	if err != nil {
		return err
	}

	return emitJSON(map[string]string{
		"GOAL_NUM":        goal.FormatNumber(g.Number),
		"GOAL_DIR":        g.Dir,
		"GOAL_FILE":       filepath.Join(g.Dir, goal.DocGoal),
		"STRATEGIES_FILE": filepath.Join(g.Dir, goal.DocStrategies),
		"MILESTONES_FILE": filepath.Join(g.Dir, goal.DocMilestones),
		"EXECUTION_FILE":  filepath.Join(g.Dir, goal.DocExecution),
		"RISKS_FILE":      filepath.Join(g.Dir, goal.DocRisks),
		"BRANCH_NAME":     g.Branch(),
	})
}
