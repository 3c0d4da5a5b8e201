package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/goalkit-labs/goalkit/embedded"
)

// Manifest describes a template pack: the manifest.yaml shipped with the
// embedded pack and allowed in project template overrides.
type Manifest struct {
	Name          string          `yaml:"name"`
	Version       string          `yaml:"version"`
	MinCLIVersion string          `yaml:"min_cli_version,omitempty"`
	Templates     []ManifestEntry `yaml:"templates"`
}

// ManifestEntry is one template declared in a pack manifest.
type ManifestEntry struct {
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	Description string `yaml:"description,omitempty"`
}

// ValidationIssue is a single schema violation in a manifest.
type ValidationIssue struct {
	Path    string
	Message string
	Keyword string
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(embedded.ManifestSchema))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("manifest.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("manifest.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compile manifest schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateManifest checks raw manifest YAML against the embedded JSON
// schema. The error return covers schema compilation and parse failures;
// schema violations come back as issues.
func ValidateManifest(data []byte) ([]ValidationIssue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest YAML: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert manifest to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("prepare manifest for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []ValidationIssue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		issues = []ValidationIssue{{Message: ve.Error()}}
	}
	return issues, nil
}

// collectIssues walks the validation error tree and keeps leaf errors with
// specific property information.
func collectIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}
		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kw := ve.ErrorKind.KeywordPath(); len(kw) > 0 {
				keyword = kw[len(kw)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		if keyword == "" || keyword == "$ref" || keyword == "allOf" || keyword == "oneOf" {
			return
		}
		*issues = append(*issues, ValidationIssue{Path: path, Message: msg, Keyword: keyword})
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

// LoadManifest reads and parses a manifest file without schema validation.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest YAML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// CheckCLICompatibility verifies the running CLI satisfies the manifest's
// min_cli_version. A missing constraint always passes.
func (m *Manifest) CheckCLICompatibility(cliVersion string) error {
	if m.MinCLIVersion == "" {
		return nil
	}
	min, err := semver.NewVersion(strings.TrimPrefix(m.MinCLIVersion, "v"))
	if err != nil {
		return fmt.Errorf("parse min_cli_version %q: %w", m.MinCLIVersion, err)
	}
	cur, err := semver.NewVersion(strings.TrimPrefix(cliVersion, "v"))
	if err != nil {
		return fmt.Errorf("parse CLI version %q: %w", cliVersion, err)
	}
	if cur.LessThan(min) {
		return fmt.Errorf("template pack %s requires gk >= %s (running %s)", m.Name, m.MinCLIVersion, cliVersion)
	}
	return nil
}
