package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotSymlink is returned by ReadSymlinkTarget when the entry exists but is
// not a symbolic link.
var ErrNotSymlink = errors.New("not a symbolic link")

// CreateSymlink creates a symbolic link at link whose stored target is target.
// The target is written as given; it is not required to exist.
func CreateSymlink(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("creating symlink %s: %w", link, err)
	}
	return nil
}

// RemoveSymlink removes the entry at path without following it. A missing
// entry is not an error. Directories are refused so a misconfigured target can
// never recurse into user data.
func RemoveSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// ReadSymlinkTarget returns the stored target string of a symlink.
func ReadSymlinkTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return "", fmt.Errorf("%s: %w", path, ErrNotSymlink)
	}
	return os.Readlink(path)
}

// ResolveTarget turns a stored link target into an absolute, cleaned path.
// Relative targets are interpreted against the directory containing link.
// Only the strings are examined; the target is never stat'ed, so broken links
// resolve the same way as live ones.
func ResolveTarget(link, stored string) (string, error) {
	if filepath.IsAbs(stored) {
		return filepath.Clean(stored), nil
	}
	absLink, err := filepath.Abs(link)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", link, err)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(absLink), stored)), nil
}

// RelativeTarget returns the path to target relative to the directory that
// will contain link.
func RelativeTarget(link, target string) (string, error) {
	absLink, err := filepath.Abs(link)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", link, err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", target, err)
	}
	rel, err := filepath.Rel(filepath.Dir(absLink), absTarget)
	if err != nil {
		return "", fmt.Errorf("computing relative path from %s to %s: %w", link, target, err)
	}
	return rel, nil
}

// IsSymlinkSupported reports whether dir's filesystem accepts symlinks, by
// creating and removing a probe link.
func IsSymlinkSupported(dir string) bool {
	probe, err := os.CreateTemp(dir, ".ailink-probe-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	defer os.Remove(name)

	link := name + ".lnk"
	defer os.Remove(link)

	return os.Symlink(filepath.Base(name), link) == nil
}
