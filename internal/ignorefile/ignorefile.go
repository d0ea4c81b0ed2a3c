// Package ignorefile maintains a line-oriented ignore manifest such as
// .gitignore with set semantics on trimmed lines.
package ignorefile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// manifest is the parsed content of an ignore file.
type manifest struct {
	lines []string
	// eol is the line ending the file already uses, so a rewrite keeps it.
	eol string
}

// read returns the lines of the manifest, without a trailing empty line.
// A missing file yields no lines.
func read(path string) (manifest, error) {
	m := manifest{eol: "\n"}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return m, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(content) == 0 {
		return m, nil
	}
	text := string(content)
	if strings.Contains(text, "\r\n") {
		m.eol = "\r\n"
		text = strings.ReplaceAll(text, "\r\n", "\n")
	}
	m.lines = strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return m, nil
}

func write(path string, m manifest) error {
	output := ""
	if len(m.lines) > 0 {
		output = strings.Join(m.lines, m.eol) + m.eol
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Contains reports whether entry is present as a line in the manifest.
func Contains(path, entry string) (bool, error) {
	m, err := read(path)
	if err != nil {
		return false, err
	}
	entry = strings.TrimSpace(entry)
	for _, l := range m.lines {
		if strings.TrimSpace(l) == entry {
			return true, nil
		}
	}
	return false, nil
}

// Add appends each entry that is not already a line of the manifest and
// returns the entries it added, in input order. Existing lines are kept as they
// are. The file is rewritten only when something was added.
func Add(path string, entries []string) ([]string, error) {
	m, err := read(path)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(m.lines))
	for _, l := range m.lines {
		present[strings.TrimSpace(l)] = true
	}

	var added []string
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" || present[e] {
			continue
		}
		present[e] = true
		m.lines = append(m.lines, e)
		added = append(added, e)
	}

	if len(added) == 0 {
		return nil, nil
	}
	if err := write(path, m); err != nil {
		return nil, err
	}
	return added, nil
}

// Remove deletes the lines matching any of entries and returns the entries
// that were present. The file is rewritten only when something was removed.
func Remove(path string, entries []string) ([]string, error) {
	m, err := read(path)
	if err != nil {
		return nil, err
	}

	drop := make(map[string]bool, len(entries))
	for _, e := range entries {
		drop[strings.TrimSpace(e)] = true
	}

	var (
		kept    []string
		removed []string
		seen    = make(map[string]bool)
	)
	for _, l := range m.lines {
		t := strings.TrimSpace(l)
		if drop[t] {
			if !seen[t] {
				seen[t] = true
				removed = append(removed, t)
			}
			continue
		}
		kept = append(kept, l)
	}

	if len(removed) == 0 {
		return nil, nil
	}
	m.lines = kept
	if err := write(path, m); err != nil {
		return nil, err
	}
	return removed, nil
}
