package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/console"
	"github.com/goalkit-labs/goalkit/internal/fsx"
	"github.com/goalkit-labs/goalkit/internal/goal"
	"github.com/goalkit-labs/goalkit/internal/template"
)

// scaffoldSpec describes one planning-document command. strategies,
// milestones, execution, and risks are the same operation over different
// documents, so they share a single runner.
type scaffoldSpec struct {
	use      string
	short    string
	doc      string   // file name inside the goal directory
	template string   // template base name
	requires []string // docs that must exist first
}

var scaffoldSpecs = []scaffoldSpec{
	{
		use:      "strategies",
		short:    "Scaffold strategies.md for the current goal",
		doc:      goal.DocStrategies,
		template: "strategies",
	},
	{
		use:      "milestones",
		short:    "Scaffold milestones.md for the current goal",
		doc:      goal.DocMilestones,
		template: "milestones",
	},
	{
		use:      "execution",
		short:    "Scaffold execution.md for the current goal",
		doc:      goal.DocExecution,
		template: "execution",
		requires: []string{goal.DocStrategies, goal.DocMilestones},
	},
	{
		use:      "risks",
		short:    "Scaffold risk-register.md for the current goal",
		doc:      goal.DocRisks,
		template: "risk-register",
	},
}

func init() {
	for _, spec := range scaffoldSpecs {
		spec := spec
		var force bool
		var goalRef string
		cmd := &cobra.Command{
			Use:   spec.use,
			Short: spec.short,
			Long: fmt.Sprintf(`Create %s in the current goal's directory from its template and commit it.

The current goal is resolved from the checked-out branch (NNN-slug), or
named explicitly with --goal (a number, slug, or directory name).`, spec.doc),
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runScaffold(cmd, spec, goalRef, force)
			},
		}
		cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing "+spec.doc+" without prompting")
		cmd.Flags().StringVar(&goalRef, "goal", "", "Goal to scaffold into (number, slug, or NNN-slug)")
		rootCmd.AddCommand(cmd)
	}
}

func runScaffold(cmd *cobra.Command, spec scaffoldSpec, goalRef string, force bool) error {
	p, err := requireProject()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := requireRepo(ctx, p.Root); err != nil {
		return err
	}

	g, err := resolveGoal(ctx, p, goalRef)
	if err != nil {
		return err
	}
	target := filepath.Join(g.Dir, spec.doc)

	if jsonOut {
		return emitJSON(map[string]string{
			"GOAL_NUM":    goal.FormatNumber(g.Number),
			"GOAL_DIR":    g.Dir,
			"TARGET_FILE": target,
			"BRANCH_NAME": g.Branch(),
		})
	}

	if missing := missingDocs(g, spec.requires); len(missing) > 0 {
		return fmt.Errorf("goal %s is missing %s; scaffold those first", g.Name(), strings.Join(missing, " and "))
	}

	if fsx.Exists(target) {
		ok, err := confirmOverwrite(p.Rel(target), force)
		if err != nil {
			return err
		}
		if !ok {
			console.Warnf("keeping existing %s; nothing done", spec.doc)
			return nil
		}
	}

	if dryRun {
		console.DryRunf("would write %s", p.Rel(target))
		console.DryRunf("would commit the new document")
		return nil
	}

	description := g.Title
	if description == "" {
		description = g.Slug
	}
	content, err := template.RenderNamed(p.TemplatesDir(), spec.template, goalTokens(p, g, description))
	if err != nil {
		return err
	}
	if err := fsx.WriteFileAtomic(target, content, 0644); err != nil {
		return err
	}

	msg := fmt.Sprintf("Add %s for goal %s", spec.doc, goal.FormatNumber(g.Number))
	if err := commitPaths(ctx, p, msg, p.Rel(target)); err != nil {
		return err
	}

	console.Okf("created %s", p.Rel(target))
	return nil
}

// missingDocs lists required planning documents absent from the goal dir.
func missingDocs(g *goal.Goal, required []string) []string {
	var missing []string
	for _, doc := range required {
		if !g.Docs[doc] {
			missing = append(missing, doc)
		}
	}
	return missing
}
