// Package branding provides compile-time identity values for the CLI.
//
// Values come from the embedded branding.yaml, so a fork can rename the
// binary and its defaults without touching Go code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	ProjectFile   string `yaml:"project_file"`
	CanonicalFile string `yaml:"canonical_file"`
	IgnoreFile    string `yaml:"ignore_file"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:       "ailink",
			DisplayName:   "AI Link",
			Description:   "Keep AI assistant instruction files linked to one canonical document",
			HomeDir:       ".ailink",
			EnvPrefix:     "AILINK",
			ProjectFile:   ".ailink.yaml",
			CanonicalFile: "Instructions.md",
			IgnoreFile:    ".gitignore",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "ailink").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".ailink").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "AILINK").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ProjectFile returns the name of the optional per-project settings file.
func ProjectFile() string { load(); return defaults.ProjectFile }

// CanonicalFile returns the default canonical document name.
func CanonicalFile() string { load(); return defaults.CanonicalFile }

// IgnoreFile returns the default ignore manifest name.
func IgnoreFile() string { load(); return defaults.IgnoreFile }

// EnvVar returns the environment variable for a config key, e.g.,
// EnvVar("log.level") → "AILINK_LOG_LEVEL".
func EnvVar(key string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
