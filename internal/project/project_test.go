package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func initProject(t *testing.T, root string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(root, Dir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, Dir, VisionFile), []byte("# Vision\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindFromRoot(t *testing.T) {
	root := t.TempDir()
	initProject(t, root)

	p, err := Find(root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.Root != root {
		t.Errorf("Root = %q, want %q", p.Root, root)
	}
	if p.Config == nil {
		t.Fatal("Config not loaded")
	}
}

func TestFindFromNestedDir(t *testing.T) {
	root := t.TempDir()
	initProject(t, root)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	p, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if p.Root != root {
		t.Errorf("Root = %q, want %q", p.Root, root)
	}
}

func TestFindNotInitialized(t *testing.T) {
	_, err := Find(t.TempDir())
	var notInit *ErrNotInitialized
	if !errors.As(err, &notInit) {
		t.Fatalf("Find error = %v, want *ErrNotInitialized", err)
	}
}

func TestPaths(t *testing.T) {
	root := t.TempDir()
	initProject(t, root)
	p, err := Find(root)
	if err != nil {
		t.Fatal(err)
	}

	if p.GoalKitDir() != filepath.Join(root, ".goalkit") {
		t.Errorf("GoalKitDir = %q", p.GoalKitDir())
	}
	if p.VisionPath() != filepath.Join(root, ".goalkit", "vision.md") {
		t.Errorf("VisionPath = %q", p.VisionPath())
	}
	if p.GoalsDir() != filepath.Join(root, ".goalkit", "goals") {
		t.Errorf("GoalsDir = %q", p.GoalsDir())
	}
	if p.TemplatesDir() != filepath.Join(root, ".goalkit", "templates") {
		t.Errorf("TemplatesDir = %q", p.TemplatesDir())
	}
	if p.Name() != filepath.Base(root) {
		t.Errorf("Name = %q, want %q", p.Name(), filepath.Base(root))
	}
}

func TestGoalsDirHonorsConfig(t *testing.T) {
	root := t.TempDir()
	initProject(t, root)
	if err := os.WriteFile(filepath.Join(root, Dir, "config.yaml"), []byte("goals_dir: objectives\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Find(root)
	if err != nil {
		t.Fatal(err)
	}
	if p.GoalsDir() != filepath.Join(root, ".goalkit", "objectives") {
		t.Errorf("GoalsDir = %q, want configured objectives", p.GoalsDir())
	}
}

func TestIsInitialized(t *testing.T) {
	root := t.TempDir()
	if IsInitialized(root) {
		t.Error("IsInitialized true before init")
	}
	initProject(t, root)
	if !IsInitialized(root) {
		t.Error("IsInitialized false after init")
	}
}
