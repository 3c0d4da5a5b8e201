package persona

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNamesSortedAndNonEmpty(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("got %d personas, want several", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
	for _, name := range names {
		p, ok := Get(name)
		if !ok {
			t.Errorf("Get(%q) missing", name)
		}
		if p.ContextText == "" || p.Byline == "" {
			t.Errorf("persona %q has empty text fields", name)
		}
	}
}

func TestDefaultIsRegistered(t *testing.T) {
	if _, ok := Get(Default); !ok {
		t.Fatalf("default persona %q not in registry", Default)
	}
}

func TestStoreDefaultWhenUnset(t *testing.T) {
	s := NewStore(t.TempDir())
	p, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if p.Name != Default {
		t.Errorf("persona = %q, want default %q", p.Name, Default)
	}
}

func TestStoreSetAndCurrent(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)

	if err := s.Set("reviewer"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	p, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if p.Name != "reviewer" {
		t.Errorf("persona = %q, want reviewer", p.Name)
	}

	data, err := os.ReadFile(filepath.Join(dir, "personas", StateFile))
	if err != nil {
		t.Fatalf("read state file: %v", err)
	}
	if string(data) != "reviewer\n" {
		t.Errorf("state file = %q, want reviewer newline", data)
	}
}

func TestStoreSetRejectsUnknown(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Set("wizard"); err == nil {
		t.Error("Set(wizard) succeeded, want error")
	}
}

func TestStoreCurrentRejectsCorruptState(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	if err := os.MkdirAll(filepath.Join(dir, "personas"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path(), []byte("wizard\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Current(); err == nil {
		t.Error("Current accepted unknown persona from state file")
	}
}
