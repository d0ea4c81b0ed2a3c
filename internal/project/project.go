package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/ailink/internal/branding"
)

// File is the parsed project file.
type File struct {
	Requires     string   `yaml:"requires,omitempty"`
	Canonical    string   `yaml:"canonical,omitempty"`
	IgnoreFile   string   `yaml:"ignore_file,omitempty"`
	Targets      []string `yaml:"targets,omitempty"`
	ExtraTargets []string `yaml:"extra_targets,omitempty"`
	Exclude      []string `yaml:"exclude,omitempty"`

	// Path is where the file was read from; empty when no file exists.
	Path string `yaml:"-"`
}

// InvalidError reports schema violations in a project file.
type InvalidError struct {
	Path   string
	Result *ValidationResult
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Result.Summary())
}

// FilePath returns the project file location under root.
func FilePath(root string) string {
	return filepath.Join(root, branding.ProjectFile())
}

// Load reads the project file under root. A missing file yields an empty File
// and no error.
func Load(root string) (*File, error) {
	path := FilePath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Result: result}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing project file: %w", err)
	}
	f.Path = path
	return &f, nil
}

// Settings returns the values that map onto config keys, for layering above
// the user config file.
func (f *File) Settings() map[string]any {
	m := map[string]any{}
	if f.Canonical != "" {
		m["canonical"] = f.Canonical
	}
	if f.IgnoreFile != "" {
		m["ignore_file"] = f.IgnoreFile
	}
	return m
}
