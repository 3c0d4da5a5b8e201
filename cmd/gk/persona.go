package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/console"
	"github.com/goalkit-labs/goalkit/internal/persona"
)

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Manage the project persona",
	Long: `The persona is a named preset that selects the working-style text
inserted into generated agent context files. It is stored in
.goalkit/personas/current_persona.txt.`,
}

var personaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available personas",
	Args:  cobra.NoArgs,
	RunE:  runPersonaList,
}

var personaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected persona",
	Args:  cobra.NoArgs,
	RunE:  runPersonaShow,
}

var personaSetCmd = &cobra.Command{
	Use:   "set [name]",
	Short: "Select a persona",
	Long: `Select the project persona. With no argument and an interactive
terminal, opens a picker.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPersonaSet,
}

func init() {
	personaCmd.AddCommand(personaListCmd)
	personaCmd.AddCommand(personaShowCmd)
	personaCmd.AddCommand(personaSetCmd)
	rootCmd.AddCommand(personaCmd)
}

func runPersonaList(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}
	current, err := persona.NewStore(p.GoalKitDir()).Current()
	if err != nil {
		return err
	}

	if jsonOut {
		return emitJSON(map[string]interface{}{
			"PERSONAS": persona.Names(),
			"CURRENT":  current.Name,
		})
	}

	for _, pr := range persona.All() {
		marker := "  "
		if pr.Name == current.Name {
			marker = console.Accent.Render("* ")
		}
		fmt.Printf("%s%-10s %s\n", marker, pr.Name, console.Faint.Render(pr.Byline))
	}
	return nil
}

func runPersonaShow(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}
	current, err := persona.NewStore(p.GoalKitDir()).Current()
	if err != nil {
		return err
	}

	if jsonOut {
		return emitJSON(map[string]string{"PERSONA": current.Name})
	}
	fmt.Printf("%s — %s\n", current.Name, current.Byline)
	return nil
}

func runPersonaSet(cmd *cobra.Command, args []string) error {
	p, err := requireProject()
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if !stdoutIsTTY() {
			return fmt.Errorf("no persona named and no interactive terminal; run: gk persona set <name>")
		}
		name, err = runPersonaPicker()
		if err != nil {
			return err
		}
		if name == "" {
			console.Warnf("no persona selected; nothing done")
			return nil
		}
	}

	if jsonOut {
		return emitJSON(map[string]string{"PERSONA": name})
	}
	if dryRun {
		console.DryRunf("would select persona %s", name)
		return nil
	}

	if err := persona.NewStore(p.GoalKitDir()).Set(name); err != nil {
		return err
	}
	console.Okf("persona set to %s", name)
	fmt.Println("Run gk context update to refresh agent context files.")
	return nil
}

// stdoutIsTTY reports whether stdout is attached to a terminal.
func stdoutIsTTY() bool {
	info, err := os.Stdout.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
