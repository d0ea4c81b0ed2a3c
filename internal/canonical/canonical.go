// Package canonical manages the single instructions document that every
// linked assistant file points at.
package canonical

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed templates/instructions.md
var defaultContent []byte

// DefaultContent returns the template written when the document is missing.
func DefaultContent() []byte {
	out := make([]byte, len(defaultContent))
	copy(out, defaultContent)
	return out
}

// Path returns the absolute, cleaned path of the canonical document.
func Path(root, name string) (string, error) {
	p := name
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, name)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}
	return abs, nil
}

// Exists reports whether an entry is present at the canonical path.
func Exists(root, name string) (bool, error) {
	p, err := Path(root, name)
	if err != nil {
		return false, err
	}
	if _, err := os.Lstat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", p, err)
	}
	return true, nil
}

// Ensure creates the canonical document with the default template when it does
// not exist and reports whether it did. An existing document is never written.
func Ensure(root, name string) (bool, error) {
	p, err := Path(root, name)
	if err != nil {
		return false, err
	}

	exists, err := Exists(root, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return false, fmt.Errorf("creating directory for %s: %w", name, err)
	}

	// O_EXCL so a document appearing between the check and the write is kept.
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := f.Write(defaultContent); err != nil {
		f.Close()
		return false, fmt.Errorf("writing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", name, err)
	}
	return true, nil
}
