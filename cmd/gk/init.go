package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/goalkit-labs/goalkit/embedded"
	"github.com/goalkit-labs/goalkit/internal/config"
	"github.com/goalkit-labs/goalkit/internal/console"
	"github.com/goalkit-labs/goalkit/internal/fsx"
	"github.com/goalkit-labs/goalkit/internal/git"
	"github.com/goalkit-labs/goalkit/internal/persona"
	"github.com/goalkit-labs/goalkit/internal/project"
	"github.com/goalkit-labs/goalkit/internal/template"
)

var (
	initForce bool
	initNoGit bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Initialize a Goal Kit project",
	Long: `Set up a directory as a Goal Kit project.

This creates:
  .goalkit/vision.md        - Project vision (the project marker)
  .goalkit/goals/           - Numbered goal directories
  .goalkit/templates/       - Template pack (overridable per project)
  .goalkit/personas/        - Persona state

If the directory is not a git repository one is initialized (skip with
--no-git), and the new .goalkit/ tree is committed.

Safe to re-run: an existing vision.md prompts before being overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing vision.md without prompting")
	initCmd.Flags().BoolVar(&initNoGit, "no-git", false, "Skip git init and the initial commit")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	target, err := project.Cwd()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		target, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve %s: %w", args[0], err)
		}
	}

	goalkitDir := filepath.Join(target, project.Dir)
	visionPath := filepath.Join(goalkitDir, project.VisionFile)

	cfg, err := config.Load(goalkitDir)
	if err != nil {
		return err
	}

	if jsonOut {
		return emitJSON(map[string]string{
			"PROJECT_ROOT":  target,
			"GOALKIT_DIR":   goalkitDir,
			"VISION_FILE":   visionPath,
			"GOALS_DIR":     filepath.Join(goalkitDir, cfg.GoalsDir),
			"TEMPLATES_DIR": filepath.Join(goalkitDir, cfg.TemplatesDir),
			"PERSONA_FILE":  persona.NewStore(goalkitDir).Path(),
		})
	}

	if fsx.Exists(visionPath) {
		ok, err := confirmOverwrite(project.Dir+"/"+project.VisionFile, initForce)
		if err != nil {
			return err
		}
		if !ok {
			console.Warnf("keeping existing vision.md; nothing done")
			return nil
		}
	}

	if dryRun {
		console.DryRunf("would create %s/{%s,%s,personas}", project.Dir, cfg.GoalsDir, cfg.TemplatesDir)
		console.DryRunf("would write %s", visionPath)
		console.DryRunf("would copy the default template pack into %s", filepath.Join(goalkitDir, cfg.TemplatesDir))
		if !initNoGit {
			console.DryRunf("would ensure a git repository and commit %s/", project.Dir)
		}
		return nil
	}

	for _, dir := range []string{cfg.GoalsDir, cfg.TemplatesDir, "personas"} {
		if err := os.MkdirAll(filepath.Join(goalkitDir, dir), 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	content, err := template.RenderNamed("", "vision", template.Tokens{
		"DATE":         time.Now().Format("2006-01-02"),
		"PROJECT NAME": filepath.Base(target),
		"PERSONA":      cfg.DefaultPersona,
	})
	if err != nil {
		return err
	}
	if err := fsx.WriteFileAtomic(visionPath, content, 0644); err != nil {
		return err
	}

	if err := copyTemplatePack(filepath.Join(goalkitDir, cfg.TemplatesDir)); err != nil {
		return err
	}

	store := persona.NewStore(goalkitDir)
	if err := store.Set(cfg.DefaultPersona); err != nil {
		return err
	}

	if !initNoGit {
		if err := ensureRepoAndCommit(cmd.Context(), target); err != nil {
			return err
		}
	}

	printInitSummary(target, cfg)
	return nil
}

// copyTemplatePack extracts the embedded templates (manifest included)
// into the project's template directory. Existing files are kept so local
// overrides survive a re-init.
func copyTemplatePack(dest string) error {
	return fs.WalkDir(embedded.Templates, embedded.TemplatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := filepath.Base(path)
		target := filepath.Join(dest, name)
		if fsx.Exists(target) {
			console.Debugf("keeping existing template %s", name)
			return nil
		}
		data, err := embedded.Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read embedded template %s: %w", name, err)
		}
		return fsx.WriteFileAtomic(target, data, 0644)
	})
}

// ensureRepoAndCommit initializes a repository when needed and commits the
// fresh .goalkit tree.
func ensureRepoAndCommit(ctx context.Context, target string) error {
	repo := git.NewRepo(gitRunner, target)
	if _, err := repo.Root(ctx); err != nil {
		console.Infof("initializing git repository in %s", target)
		if err := repo.Init(ctx); err != nil {
			return err
		}
	}
	if err := repo.Add(ctx, project.Dir); err != nil {
		return err
	}
	if err := repo.Commit(ctx, "Initialize Goal Kit project"); err != nil {
		return err
	}
	return nil
}

func printInitSummary(target string, cfg *config.Config) {
	console.Okf("initialized Goal Kit project in %s", target)
	fmt.Println()
	fmt.Println("Created:")
	fmt.Printf("  %s/%s\n", project.Dir, project.VisionFile)
	fmt.Printf("  %s/%s/\n", project.Dir, cfg.GoalsDir)
	fmt.Printf("  %s/%s/\n", project.Dir, cfg.TemplatesDir)
	fmt.Printf("  %s/personas/%s\n", project.Dir, persona.StateFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  Edit .goalkit/vision.md to state where the project is going")
	fmt.Println("  gk goal new <description>  - Create your first goal")
}
