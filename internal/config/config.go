// Package config loads gk configuration through viper. Precedence, highest
// first: GOALKIT_* environment variables, .goalkit/config.yaml, defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the project config file under .goalkit/.
const FileName = "config.yaml"

// EnvPrefix is the environment variable prefix (GOALKIT_GOALS_DIR etc).
const EnvPrefix = "GOALKIT"

// Config holds all gk settings.
type Config struct {
	// GoalsDir is the goals root, relative to .goalkit/.
	GoalsDir string

	// TemplatesDir is the template override directory, relative to .goalkit/.
	TemplatesDir string

	// DefaultPersona seeds the persona state file at gk init.
	DefaultPersona string

	// GitCommit controls whether scaffold commands commit their output.
	GitCommit bool

	// ContextAgents restricts which agent context files gk context update
	// regenerates. Empty means all registered agents.
	ContextAgents []string
}

// Load reads configuration for the project whose .goalkit directory is
// goalkitDir. A missing config file is fine; a malformed one is an error.
func Load(goalkitDir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("goals_dir", "goals")
	v.SetDefault("templates_dir", "templates")
	v.SetDefault("default_persona", "builder")
	v.SetDefault("git.commit", true)
	v.SetDefault("context.agents", []string{})

	v.SetConfigFile(filepath.Join(goalkitDir, FileName))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(filepath.Join(goalkitDir, FileName)); statErr == nil {
			return nil, fmt.Errorf("read %s: %w", FileName, err)
		}
	}

	return &Config{
		GoalsDir:       v.GetString("goals_dir"),
		TemplatesDir:   v.GetString("templates_dir"),
		DefaultPersona: v.GetString("default_persona"),
		GitCommit:      v.GetBool("git.commit"),
		ContextAgents:  v.GetStringSlice("context.agents"),
	}, nil
}

// Default returns the configuration with no project file or environment
// applied.
func Default() *Config {
	return &Config{
		GoalsDir:       "goals",
		TemplatesDir:   "templates",
		DefaultPersona: "builder",
		GitCommit:      true,
	}
}
