package setup

import (
	"github.com/agentx-labs/ailink/internal/canonical"
	"github.com/agentx-labs/ailink/internal/ignorefile"
	"github.com/agentx-labs/ailink/internal/scanner"
)

// TargetStatus is one row of the status listing.
type TargetStatus struct {
	scanner.Result
	Ignored bool
}

// Status describes the current link state without changing anything.
type Status struct {
	CanonicalPath   string
	CanonicalExists bool
	Targets         []TargetStatus
}

// Linked counts targets that already link to the canonical document.
func (s *Status) Linked() int {
	n := 0
	for _, t := range s.Targets {
		if t.State == scanner.ValidSymlink {
			n++
		}
	}
	return n
}

// Status scans the candidates and checks each against the ignore manifest.
func (r *Runner) Status() (*Status, error) {
	abs, err := r.canonicalPath()
	if err != nil {
		return nil, err
	}
	exists, err := canonical.Exists(r.Root, r.CanonicalName)
	if err != nil {
		return nil, err
	}

	st := &Status{CanonicalPath: abs, CanonicalExists: exists}
	for _, res := range scanner.Scan(r.Root, abs, r.Candidates) {
		ignored, err := ignorefile.Contains(r.ignorePath(), res.Candidate.Path)
		if err != nil {
			r.Logger.Warn().Err(err).Msg("Could not read ignore file")
		}
		st.Targets = append(st.Targets, TargetStatus{Result: res, Ignored: ignored})
	}
	return st, nil
}
