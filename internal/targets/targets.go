package targets

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ToolName identifies an AI assistant whose configuration file can be linked.
type ToolName string

const (
	Gemini   ToolName = "gemini"
	Claude   ToolName = "claude"
	Copilot  ToolName = "copilot"
	Cursor   ToolName = "cursor"
	Cline    ToolName = "cline"
	Windsurf ToolName = "windsurf"

	// Custom marks candidates that come from a project file rather than the
	// built-in list.
	Custom ToolName = "custom"
)

// Candidate is one linkable path, relative to the project root and always
// slash-separated.
type Candidate struct {
	Tool ToolName
	Path string
}

// builtin is the default candidate list, in prompt order.
var builtin = []Candidate{
	{Tool: Gemini, Path: "GEMINI.md"},
	{Tool: Claude, Path: "CLAUDE.md"},
	{Tool: Copilot, Path: ".github/copilot-instructions.md"},
	{Tool: Cursor, Path: ".cursorrules"},
	{Tool: Cline, Path: ".clinerules"},
	{Tool: Windsurf, Path: ".windsurfrules"},
}

// Default returns a copy of the built-in candidate list.
func Default() []Candidate {
	out := make([]Candidate, len(builtin))
	copy(out, builtin)
	return out
}

// AllTools returns the names of the built-in tools.
func AllTools() []ToolName {
	names := make([]ToolName, len(builtin))
	for i, c := range builtin {
		names[i] = c.Tool
	}
	return names
}

// ParseToolName converts a string to a ToolName, returning false if it is not
// one of the built-in tools.
func ParseToolName(s string) (ToolName, bool) {
	for _, name := range AllTools() {
		if string(name) == s {
			return name, true
		}
	}
	return "", false
}

// ForPath returns the candidate for a relative path, tagging it with the
// built-in tool when the path is a known one.
func ForPath(p string) (Candidate, error) {
	clean, err := NormalizePath(p)
	if err != nil {
		return Candidate{}, err
	}
	for _, c := range builtin {
		if c.Path == clean {
			return c, nil
		}
	}
	return Candidate{Tool: Custom, Path: clean}, nil
}

// NormalizePath cleans a candidate path and rejects paths that would escape
// the project root.
func NormalizePath(p string) (string, error) {
	p = strings.TrimSpace(filepath.ToSlash(p))
	if p == "" {
		return "", fmt.Errorf("empty target path")
	}
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return "", fmt.Errorf("target path %q must be relative to the project root", p)
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("target path %q escapes the project root", p)
	}
	return clean, nil
}

// absUnder returns the cleaned absolute form of p, resolving relative paths
// against root.
func absUnder(root, p string) (string, error) {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return abs, nil
}

// Paths returns the paths of the given candidates in order.
func Paths(candidates []Candidate) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.Path
	}
	return out
}

// Build assembles the candidate list for the project at root. A non-empty
// replace list takes the place of the built-in list; extra paths are appended;
// excluded tool names or paths are dropped. Duplicates are removed, and so is
// any candidate that is the canonical document, whether canonical is given
// relative to root or as an absolute path.
func Build(root, canonical string, replace, extra, exclude []string) ([]Candidate, error) {
	base := Default()
	if len(replace) > 0 {
		base = base[:0]
		for _, p := range replace {
			c, err := ForPath(p)
			if err != nil {
				return nil, err
			}
			base = append(base, c)
		}
	}
	for _, p := range extra {
		c, err := ForPath(p)
		if err != nil {
			return nil, err
		}
		base = append(base, c)
	}

	drop := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		if name, ok := ParseToolName(e); ok {
			drop[string(name)] = true
			continue
		}
		clean, err := NormalizePath(e)
		if err != nil {
			return nil, fmt.Errorf("exclude: %w", err)
		}
		drop[clean] = true
	}

	canonicalAbs, err := absUnder(root, canonical)
	if err != nil {
		return nil, fmt.Errorf("canonical document: %w", err)
	}

	seen := make(map[string]bool, len(base))
	out := make([]Candidate, 0, len(base))
	for _, c := range base {
		if seen[c.Path] || drop[c.Path] || drop[string(c.Tool)] {
			continue
		}
		abs, err := absUnder(root, c.Path)
		if err != nil {
			return nil, err
		}
		if abs == canonicalAbs {
			continue
		}
		seen[c.Path] = true
		out = append(out, c)
	}
	return out, nil
}
