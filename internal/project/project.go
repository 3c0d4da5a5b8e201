// Package project locates and describes a Goal Kit project: a directory
// tree whose root contains .goalkit/vision.md.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goalkit-labs/goalkit/internal/config"
	"github.com/goalkit-labs/goalkit/internal/fsx"
)

// Dir is the project state directory at the repo root.
const Dir = ".goalkit"

// VisionFile is the marker file that makes a directory an initialized
// project root.
const VisionFile = "vision.md"

// ErrNotInitialized is returned when no project root is found.
type ErrNotInitialized struct {
	Start string
}

func (e *ErrNotInitialized) Error() string {
	return fmt.Sprintf("not a Goal Kit project (no %s/%s found from %s); run gk init first", Dir, VisionFile, e.Start)
}

// Project is a located project with its configuration loaded.
type Project struct {
	Root   string
	Config *config.Config
}

// Find walks up from start looking for the project marker and loads the
// project configuration.
func Find(start string) (*Project, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", start, err)
	}

	dir := abs
	for {
		if fsx.Exists(filepath.Join(dir, Dir, VisionFile)) {
			cfg, err := config.Load(filepath.Join(dir, Dir))
			if err != nil {
				return nil, err
			}
			return &Project{Root: dir, Config: cfg}, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, &ErrNotInitialized{Start: abs}
		}
		dir = parent
	}
}

// IsInitialized reports whether dir itself is a project root.
func IsInitialized(dir string) bool {
	return fsx.Exists(filepath.Join(dir, Dir, VisionFile))
}

// GoalKitDir returns the absolute .goalkit directory.
func (p *Project) GoalKitDir() string {
	return filepath.Join(p.Root, Dir)
}

// VisionPath returns the absolute path of the vision file.
func (p *Project) VisionPath() string {
	return filepath.Join(p.GoalKitDir(), VisionFile)
}

// GoalsDir returns the absolute goals root.
func (p *Project) GoalsDir() string {
	return filepath.Join(p.GoalKitDir(), p.Config.GoalsDir)
}

// TemplatesDir returns the absolute template override directory.
func (p *Project) TemplatesDir() string {
	return filepath.Join(p.GoalKitDir(), p.Config.TemplatesDir)
}

// TemplateManifestPath returns the manifest path inside the template
// override directory.
func (p *Project) TemplateManifestPath() string {
	return filepath.Join(p.TemplatesDir(), "manifest.yaml")
}

// Name returns the project name: the base name of the root directory.
func (p *Project) Name() string {
	return filepath.Base(p.Root)
}

// Rel renders path relative to the project root for display; falls back to
// the input on failure.
func (p *Project) Rel(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return rel
}

// Cwd returns the process working directory, surfacing errors in gk's
// standard wrapped form.
func Cwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}
