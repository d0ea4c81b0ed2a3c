package setup

import (
	"errors"
	"fmt"
	"io"

	"github.com/agentx-labs/ailink/internal/canonical"
	"github.com/agentx-labs/ailink/internal/ignorefile"
	"github.com/agentx-labs/ailink/internal/platform"
	"github.com/agentx-labs/ailink/internal/scanner"
)

// ErrDoctorProblems is returned when Doctor leaves problems unresolved.
var ErrDoctorProblems = errors.New("problems found")

// DoctorReport counts what Doctor found and repaired.
type DoctorReport struct {
	Problems int
	Fixed    int
}

// Doctor checks that the project can be linked and that existing links are
// healthy. With fix, it creates a missing canonical document and adds linked
// paths missing from the ignore file. It never replaces files or links.
func (r *Runner) Doctor(w io.Writer, fix bool) (*DoctorReport, error) {
	rep := &DoctorReport{}
	abs, err := r.canonicalPath()
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(w, "Project check:")

	if platform.IsSymlinkSupported(r.Root) {
		fmt.Fprintf(w, "  [ OK ] %s accepts symlinks\n", r.Root)
	} else {
		fmt.Fprintf(w, "  [FAIL] %s does not accept symlinks\n", r.Root)
		rep.Problems++
	}

	exists, err := canonical.Exists(r.Root, r.CanonicalName)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", r.CanonicalName, err)
		rep.Problems++
	case exists:
		fmt.Fprintf(w, "  [ OK ] %s exists\n", r.CanonicalName)
	default:
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", r.CanonicalName)
		if !fix {
			rep.Problems++
			break
		}
		if _, cerr := canonical.Ensure(r.Root, r.CanonicalName); cerr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", r.CanonicalName, cerr)
			rep.Problems++
			break
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", r.CanonicalName)
		rep.Fixed++
	}

	var unignored []string
	for _, res := range scanner.Scan(r.Root, abs, r.Candidates) {
		p := res.Candidate.Path
		switch res.State {
		case scanner.Absent:
			fmt.Fprintf(w, "  [MISS] %s is not linked\n", p)
		case scanner.ValidSymlink:
			fmt.Fprintf(w, "  [ OK ] %s -> %s\n", p, res.Target)
			ok, cerr := ignorefile.Contains(r.ignorePath(), p)
			if cerr != nil {
				fmt.Fprintf(w, "  [FAIL] %v\n", cerr)
				rep.Problems++
			} else if !ok {
				unignored = append(unignored, p)
			}
		case scanner.ForeignSymlink:
			fmt.Fprintf(w, "  [WARN] %s -> %s (not %s)\n", p, res.Target, r.CanonicalName)
			rep.Problems++
		case scanner.RegularFile:
			fmt.Fprintf(w, "  [WARN] %s is a regular file, not a link\n", p)
			rep.Problems++
		default:
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", p, res.Err)
			rep.Problems++
		}
	}

	if len(unignored) > 0 {
		for _, p := range unignored {
			fmt.Fprintf(w, "  [WARN] %s is not in %s\n", p, r.IgnoreFile)
		}
		if fix {
			added, aerr := ignorefile.Add(r.ignorePath(), unignored)
			if aerr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not update %s: %v\n", r.IgnoreFile, aerr)
				rep.Problems += len(unignored)
			} else {
				fmt.Fprintf(w, "  [FIX ] Added %d file(s) to %s\n", len(added), r.IgnoreFile)
				rep.Fixed += len(added)
			}
		} else {
			rep.Problems += len(unignored)
		}
	}

	if rep.Problems > 0 {
		return rep, fmt.Errorf("%w: %d", ErrDoctorProblems, rep.Problems)
	}
	return rep, nil
}
