// Package template resolves and renders the markdown templates gk
// scaffolds from. Resolution prefers a project override under
// .goalkit/templates/ and falls back to the pack embedded in the binary.
// Rendering is literal bracket-token substitution, not a templating
// engine: no escaping, loops, or conditionals, and unknown bracket text
// passes through untouched.
package template

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goalkit-labs/goalkit/embedded"
)

// Tokens maps placeholder names (without brackets) to replacement values.
// A key "DATE" replaces every occurrence of the literal "[DATE]".
type Tokens map[string]string

// Render substitutes every token occurrence in content.
func Render(content string, tokens Tokens) string {
	for name, value := range tokens {
		content = strings.ReplaceAll(content, "["+name+"]", value)
	}
	return content
}

// Resolve loads the template with the given base name (e.g. "goal" for
// goal.md). A project override at <overrideDir>/<name>.md wins; otherwise
// the embedded default is used. overrideDir may be empty.
func Resolve(overrideDir, name string) ([]byte, error) {
	file := name + ".md"

	if overrideDir != "" {
		override := filepath.Join(overrideDir, file)
		if data, err := os.ReadFile(override); err == nil {
			return data, nil
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read template override %s: %w", override, err)
		}
	}

	data, err := embedded.Templates.ReadFile(path.Join(embedded.TemplatesDir, file))
	if err != nil {
		return nil, fmt.Errorf("no template named %q", name)
	}
	return data, nil
}

// RenderNamed resolves and renders a template in one step.
func RenderNamed(overrideDir, name string, tokens Tokens) ([]byte, error) {
	data, err := Resolve(overrideDir, name)
	if err != nil {
		return nil, err
	}
	return []byte(Render(string(data), tokens)), nil
}
