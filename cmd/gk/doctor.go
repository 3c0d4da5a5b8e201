package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/internal/agentfile"
	"github.com/goalkit-labs/goalkit/internal/fsx"
	"github.com/goalkit-labs/goalkit/internal/git"
	"github.com/goalkit-labs/goalkit/internal/persona"
	"github.com/goalkit-labs/goalkit/internal/project"
	"github.com/goalkit-labs/goalkit/internal/template"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check Goal Kit health",
	Long: `Run health checks on the environment and project.

Validates that git is available, the project is initialized, the template
pack manifest is valid and compatible with this CLI, and the persona state
is intact. Optional problems are reported as warnings but do not cause
failure.

Examples:
  gk doctor
  gk doctor --json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type doctorCheck struct {
	Name     string `json:"name"`
	Status   string `json:"status"` // "pass", "warn", "fail"
	Detail   string `json:"detail"`
	Required bool   `json:"required"`
}

type doctorOutput struct {
	Checks  []doctorCheck `json:"checks"`
	Result  string        `json:"result"` // "HEALTHY", "DEGRADED", "UNHEALTHY"
	Summary string        `json:"summary"`
}

// gatherDoctorChecks runs all doctor checks and returns the results.
func gatherDoctorChecks(ctx context.Context) []doctorCheck {
	checks := []doctorCheck{
		{Name: "gk CLI", Status: "pass", Detail: fmt.Sprintf("v%s", version), Required: true},
		checkGitBinary(ctx),
		checkGitRepo(ctx),
	}

	p := locateProject()
	checks = append(checks,
		checkProjectInitialized(p),
		checkTemplateManifest(p),
		checkPersonaState(p),
		checkContextFiles(p),
	)
	return checks
}

func locateProject() *project.Project {
	cwd, err := project.Cwd()
	if err != nil {
		return nil
	}
	p, err := project.Find(cwd)
	if err != nil {
		return nil
	}
	return p
}

func checkGitBinary(ctx context.Context) doctorCheck {
	if !git.Installed(ctx, gitRunner) {
		return doctorCheck{Name: "git binary", Status: "fail", Detail: "git not found on PATH", Required: true}
	}
	return doctorCheck{Name: "git binary", Status: "pass", Detail: "available", Required: true}
}

func checkGitRepo(ctx context.Context) doctorCheck {
	cwd, err := project.Cwd()
	if err != nil {
		return doctorCheck{Name: "git repository", Status: "fail", Detail: err.Error(), Required: true}
	}
	if _, err := git.NewRepo(gitRunner, cwd).Root(ctx); err != nil {
		return doctorCheck{Name: "git repository", Status: "fail", Detail: "not inside a git work tree", Required: true}
	}
	return doctorCheck{Name: "git repository", Status: "pass", Detail: "inside a work tree", Required: true}
}

func checkProjectInitialized(p *project.Project) doctorCheck {
	if p == nil {
		return doctorCheck{Name: "project", Status: "warn", Detail: "not initialized (run gk init)"}
	}
	return doctorCheck{Name: "project", Status: "pass", Detail: p.Root}
}

func checkTemplateManifest(p *project.Project) doctorCheck {
	check := doctorCheck{Name: "template pack", Required: true}
	if p == nil || !fsx.Exists(p.TemplateManifestPath()) {
		check.Status = "pass"
		check.Detail = "embedded defaults"
		check.Required = false
		return check
	}

	m, err := template.LoadManifest(p.TemplateManifestPath())
	if err != nil {
		check.Status = "fail"
		check.Detail = fmt.Sprintf("unreadable manifest: %v", err)
		return check
	}
	data, err := os.ReadFile(p.TemplateManifestPath())
	if err != nil {
		check.Status = "fail"
		check.Detail = err.Error()
		return check
	}
	issues, err := template.ValidateManifest(data)
	if err != nil {
		check.Status = "fail"
		check.Detail = fmt.Sprintf("validate manifest: %v", err)
		return check
	}
	if len(issues) > 0 {
		check.Status = "fail"
		check.Detail = fmt.Sprintf("invalid manifest: %s", issues[0])
		return check
	}
	if err := m.CheckCLICompatibility(version); err != nil {
		check.Status = "fail"
		check.Detail = err.Error()
		return check
	}
	check.Status = "pass"
	check.Detail = fmt.Sprintf("%s v%s", m.Name, m.Version)
	return check
}

func checkPersonaState(p *project.Project) doctorCheck {
	if p == nil {
		return doctorCheck{Name: "persona", Status: "warn", Detail: "no project"}
	}
	current, err := persona.NewStore(p.GoalKitDir()).Current()
	if err != nil {
		return doctorCheck{Name: "persona", Status: "fail", Detail: err.Error()}
	}
	return doctorCheck{Name: "persona", Status: "pass", Detail: current.Name}
}

func checkContextFiles(p *project.Project) doctorCheck {
	if p == nil {
		return doctorCheck{Name: "context files", Status: "warn", Detail: "no project"}
	}
	present := 0
	for _, a := range agentfile.Registry {
		if _, ok := agentfile.Freshness(p.Root, a); ok {
			present++
		}
	}
	detail := fmt.Sprintf("%d of %d present", present, len(agentfile.Registry))
	if present == 0 {
		return doctorCheck{Name: "context files", Status: "warn", Detail: detail + " (run gk context update)"}
	}
	return doctorCheck{Name: "context files", Status: "pass", Detail: detail}
}

// doctorStatusIcon returns the display icon for a check status.
func doctorStatusIcon(status string) string {
	switch status {
	case "pass":
		return "✓"
	case "warn":
		return "!"
	case "fail":
		return "✗"
	}
	return "?"
}

// renderDoctorTable writes the formatted doctor output table.
func renderDoctorTable(w io.Writer, output doctorOutput) {
	fmt.Fprintln(w, "gk doctor")
	fmt.Fprintln(w, "─────────")

	maxName := 0
	for _, c := range output.Checks {
		if len(c.Name) > maxName {
			maxName = len(c.Name)
		}
	}
	for _, c := range output.Checks {
		padding := strings.Repeat(" ", maxName-len(c.Name))
		fmt.Fprintf(w, "%s %s%s  %s\n", doctorStatusIcon(c.Status), c.Name, padding, c.Detail)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s\n", output.Summary)
}

// hasRequiredFailure returns true if any required check has failed.
func hasRequiredFailure(checks []doctorCheck) bool {
	for _, c := range checks {
		if c.Required && c.Status == "fail" {
			return true
		}
	}
	return false
}

// computeDoctorResult classifies the overall outcome from the checks.
func computeDoctorResult(checks []doctorCheck) doctorOutput {
	out := doctorOutput{Checks: checks}
	warns, fails := 0, 0
	for _, c := range checks {
		switch c.Status {
		case "warn":
			warns++
		case "fail":
			fails++
		}
	}
	switch {
	case hasRequiredFailure(checks):
		out.Result = "UNHEALTHY"
		out.Summary = fmt.Sprintf("UNHEALTHY: %d check(s) failed", fails)
	case fails > 0 || warns > 0:
		out.Result = "DEGRADED"
		out.Summary = fmt.Sprintf("DEGRADED: %d warning(s), %d failure(s)", warns, fails)
	default:
		out.Result = "HEALTHY"
		out.Summary = "HEALTHY: all checks passed"
	}
	return out
}

func runDoctor(cmd *cobra.Command, args []string) error {
	output := computeDoctorResult(gatherDoctorChecks(cmd.Context()))
	w := cmd.OutOrStdout()

	if jsonOut {
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal doctor output: %w", err)
		}
		fmt.Fprintln(w, string(data))
	} else {
		renderDoctorTable(w, output)
	}

	if hasRequiredFailure(output.Checks) {
		return fmt.Errorf("doctor found required failures")
	}
	return nil
}
