// Package embedded provides the default template pack and the manifest
// schema compiled into the gk binary. These are the fallback when a project
// does not override templates under .goalkit/templates/.
package embedded

import "embed"

// Templates contains the default markdown templates plus manifest.yaml.
//
//go:embed templates
var Templates embed.FS

// ManifestSchema is the JSON schema used to validate template pack
// manifests.
//
//go:embed schema/manifest.schema.json
var ManifestSchema []byte

// TemplatesDir is the directory prefix inside Templates.
const TemplatesDir = "templates"
