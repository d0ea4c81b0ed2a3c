// Package scanner classifies candidate paths without modifying the filesystem.
package scanner

import (
	"os"
	"path/filepath"

	"github.com/agentx-labs/ailink/internal/platform"
	"github.com/agentx-labs/ailink/internal/targets"
)

// State is the classification of one candidate path.
type State int

const (
	// Absent means no filesystem entry exists at the path.
	Absent State = iota
	// ValidSymlink is a link whose resolved target is the canonical document.
	ValidSymlink
	// ForeignSymlink is a link that resolves anywhere else.
	ForeignSymlink
	// RegularFile is any entry that is not a symlink.
	RegularFile
	// Unknown means the entry could not be inspected; Result.Err holds why.
	Unknown
)

// String returns the name used in output and logs.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case ValidSymlink:
		return "valid-symlink"
	case ForeignSymlink:
		return "foreign-symlink"
	case RegularFile:
		return "regular-file"
	default:
		return "unknown"
	}
}

// Result is the classification of a single candidate.
type Result struct {
	Candidate targets.Candidate
	State     State
	// Target is the stored link target for symlinks.
	Target string
	Err    error
}

// Destructive reports whether linking this candidate would replace content
// that is not already a symlink.
func (r Result) Destructive() bool {
	return r.State == RegularFile || r.State == Unknown
}

// Scan classifies each candidate relative to root against the canonical
// document path. It only reads.
func Scan(root, canonicalPath string, candidates []targets.Candidate) []Result {
	want := filepath.Clean(canonicalPath)
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, classify(filepath.Join(root, filepath.FromSlash(c.Path)), want, c))
	}
	return results
}

func classify(path, canonicalPath string, c targets.Candidate) Result {
	r := Result{Candidate: c}

	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.State = Absent
			return r
		}
		r.State = Unknown
		r.Err = err
		return r
	}

	if info.Mode()&os.ModeSymlink == 0 {
		r.State = RegularFile
		return r
	}

	stored, err := platform.ReadSymlinkTarget(path)
	if err != nil {
		r.State = Unknown
		r.Err = err
		return r
	}
	r.Target = stored

	resolved, err := platform.ResolveTarget(path, stored)
	if err != nil {
		r.State = Unknown
		r.Err = err
		return r
	}
	if resolved == canonicalPath {
		r.State = ValidSymlink
	} else {
		r.State = ForeignSymlink
	}
	return r
}

// Lookup indexes results by candidate path.
func Lookup(results []Result) map[string]Result {
	m := make(map[string]Result, len(results))
	for _, r := range results {
		m[r.Candidate.Path] = r
	}
	return m
}

// Filter returns the results in the given state, preserving order.
func Filter(results []Result, state State) []Result {
	var out []Result
	for _, r := range results {
		if r.State == state {
			out = append(out, r)
		}
	}
	return out
}
