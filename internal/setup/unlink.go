package setup

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/ailink/internal/ignorefile"
	"github.com/agentx-labs/ailink/internal/platform"
	"github.com/agentx-labs/ailink/internal/scanner"
	"github.com/agentx-labs/ailink/internal/targets"
)

// ErrUnlinkDeclined is returned when the user declines removing links.
var ErrUnlinkDeclined = errors.New("unlink cancelled")

// UnlinkResult lists what Unlink changed.
type UnlinkResult struct {
	Removed       []string
	NotLinked     []string
	Failed        map[string]error
	IgnoreRemoved []string
	IgnoreErr     error
}

// Unlink removes symlinks that point at the canonical document and drops them
// from the ignore manifest. With no paths, every candidate is considered.
// Entries that are not links to the canonical document are left untouched.
// The canonical document itself is never removed.
func (r *Runner) Unlink(paths []string) (*UnlinkResult, error) {
	abs, err := r.canonicalPath()
	if err != nil {
		return nil, err
	}

	cands := r.Candidates
	if len(paths) > 0 {
		cands = make([]targets.Candidate, 0, len(paths))
		for _, p := range paths {
			c, err := targets.ForPath(p)
			if err != nil {
				return nil, err
			}
			cands = append(cands, c)
		}
	}

	res := &UnlinkResult{Failed: map[string]error{}}
	var linked []string
	for _, s := range scanner.Scan(r.Root, abs, cands) {
		if s.State == scanner.ValidSymlink {
			linked = append(linked, s.Candidate.Path)
		} else {
			res.NotLinked = append(res.NotLinked, s.Candidate.Path)
		}
	}

	p := r.Printer
	if len(linked) == 0 {
		p.Muted("No symlinks to %s found", r.CanonicalName)
		return res, nil
	}

	if !r.NonInteractive && r.Prompter != nil {
		for _, l := range linked {
			p.Plain("  %s", l)
		}
		ok, err := r.Prompter.Confirm(fmt.Sprintf("Remove %d symlink(s) to %s?", len(linked), r.CanonicalName), false)
		if err != nil {
			return nil, fmt.Errorf("confirming unlink: %w", err)
		}
		if !ok {
			return res, ErrUnlinkDeclined
		}
	}

	for _, l := range linked {
		if err := platform.RemoveSymlink(filepath.Join(r.Root, filepath.FromSlash(l))); err != nil {
			res.Failed[l] = err
			p.Failure("Failed to remove %s: %v", l, err)
			continue
		}
		res.Removed = append(res.Removed, l)
		p.Success("Removed symlink: %s", l)
	}

	if len(res.Removed) > 0 {
		res.IgnoreRemoved, res.IgnoreErr = ignorefile.Remove(r.ignorePath(), res.Removed)
		if res.IgnoreErr != nil {
			r.Logger.Warn().Err(res.IgnoreErr).Msg("Could not update ignore file")
			p.Failure("Could not update %s: %v", r.IgnoreFile, res.IgnoreErr)
		} else if len(res.IgnoreRemoved) > 0 {
			p.Success("Removed %d line(s) from %s", len(res.IgnoreRemoved), r.IgnoreFile)
		}
	}
	return res, nil
}
