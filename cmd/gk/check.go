package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/console"
	"github.com/goalkit-labs/goalkit/internal/goal"
)

var (
	checkGoalRef           string
	checkRequireStrategies bool
	checkRequireMilestones bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check which planning documents exist for the current goal",
	Long: `Report which planning documents the current goal has. With
--require-strategies or --require-milestones, exit non-zero when a
required document is missing. Orchestrators call this before starting
execution-phase work.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkGoalRef, "goal", "", "Goal to check (number, slug, or NNN-slug)")
	checkCmd.Flags().BoolVar(&checkRequireStrategies, "require-strategies", false, "Fail when strategies.md is missing")
	checkCmd.Flags().BoolVar(&checkRequireMilestones, "require-milestones", false, "Fail when milestones.md is missing")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}
	g, err := resolveGoal(cmd.Context(), p, checkGoalRef)
	if err != nil {
		return err
	}

	if jsonOut {
		payload := map[string]interface{}{
			"GOAL_NUM":    goal.FormatNumber(g.Number),
			"GOAL_DIR":    g.Dir,
			"BRANCH_NAME": g.Branch(),
		}
		for _, doc := range append([]string{goal.DocGoal}, goal.PlanningDocs...) {
			payload[docKey(doc)] = g.Docs[doc]
		}
		return emitJSON(payload)
	}

	var required []string
	if checkRequireStrategies {
		required = append(required, goal.DocStrategies)
	}
	if checkRequireMilestones {
		required = append(required, goal.DocMilestones)
	}

	for _, doc := range append([]string{goal.DocGoal}, goal.PlanningDocs...) {
		if g.Docs[doc] {
			console.Okf("%s", doc)
		} else {
			console.Warnf("%s missing", doc)
		}
	}

	if missing := missingDocs(g, required); len(missing) > 0 {
		return fmt.Errorf("goal %s is missing required %s", g.Name(), strings.Join(missing, " and "))
	}
	return nil
}

// docKey maps "risk-register.md" to the JSON key "RISK_REGISTER".
func docKey(doc string) string {
	key := strings.TrimSuffix(doc, ".md")
	key = strings.ReplaceAll(key, "-", "_")
	return strings.ToUpper(key)
}
