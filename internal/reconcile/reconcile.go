package reconcile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentx-labs/ailink/internal/platform"
	"github.com/agentx-labs/ailink/internal/prompt"
	"github.com/agentx-labs/ailink/internal/scanner"
	"github.com/agentx-labs/ailink/internal/targets"
	"github.com/agentx-labs/ailink/internal/ui"
)

// ErrIsCanonical is the failure recorded for a candidate that is the canonical
// document itself. Such a candidate is never removed.
var ErrIsCanonical = errors.New("target is the canonical document")

// Reconciler links selected candidates to the canonical document.
type Reconciler struct {
	// Root is the project directory candidate paths are relative to.
	Root string
	// Canonical is the absolute path of the canonical document.
	Canonical string
	// Prompter confirms replacing content that is not a symlink.
	Prompter prompt.Prompter
	// NonInteractive replaces without asking, after a warning.
	NonInteractive bool
	Printer        *ui.Printer
	Logger         zerolog.Logger
}

// Run processes selected paths in order using the prior scan results.
// Paths missing from results are re-scanned.
func (r *Reconciler) Run(selected []string, results []scanner.Result) *Report {
	index := scanner.Lookup(results)
	report := &Report{}
	for _, p := range selected {
		res, ok := index[p]
		if !ok {
			c, err := targets.ForPath(p)
			if err != nil {
				r.failure("Failed to create symlink for %s: %v", p, err)
				report.add(Outcome{Path: p, Action: ActionFailed, Previous: scanner.Unknown.String(), Err: err})
				continue
			}
			res = scanner.Scan(r.Root, r.Canonical, []targets.Candidate{c})[0]
		}
		report.add(r.one(p, res))
	}
	return report
}

func (r *Reconciler) one(p string, res scanner.Result) Outcome {
	out := Outcome{Path: p, Previous: res.State.String()}
	linkPath := filepath.Join(r.Root, filepath.FromSlash(p))
	log := r.Logger.With().Str("path", p).Str("state", out.Previous).Logger()

	fail := func(err error) Outcome {
		out.Action = ActionFailed
		out.Err = err
		log.Error().Err(err).Msg("Link failed")
		r.failure("Failed to create symlink for %s: %v", p, err)
		return out
	}

	if abs, err := filepath.Abs(linkPath); err != nil {
		return fail(fmt.Errorf("resolving %s: %w", p, err))
	} else if abs == filepath.Clean(r.Canonical) {
		return fail(ErrIsCanonical)
	}

	if err := os.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return fail(fmt.Errorf("creating directory: %w", err))
	}

	if res.Destructive() {
		if r.NonInteractive {
			r.warn("%s exists and is not a symlink; its content will be overwritten", p)
			log.Warn().Msg("Overwriting non-symlink entry")
		} else {
			ok, err := r.Prompter.Confirm(fmt.Sprintf("%s exists and is not a symlink. Replace it?", p), false)
			if err != nil {
				return fail(fmt.Errorf("confirming replacement: %w", err))
			}
			if !ok {
				out.Action = ActionSkipped
				log.Info().Msg("Replacement declined")
				r.muted("Skipped %s", p)
				return out
			}
		}
	}

	replacing := false
	if _, err := os.Lstat(linkPath); err == nil {
		replacing = true
		if err := platform.RemoveSymlink(linkPath); err != nil {
			return fail(err)
		}
	} else if !os.IsNotExist(err) {
		return fail(fmt.Errorf("inspecting %s: %w", p, err))
	}

	rel, err := platform.RelativeTarget(linkPath, r.Canonical)
	if err != nil {
		return fail(err)
	}
	if err := platform.CreateSymlink(rel, linkPath); err != nil {
		return fail(err)
	}

	out.Target = rel
	out.Action = ActionCreated
	if replacing {
		out.Action = ActionReplaced
	}
	log.Debug().Str("target", rel).Str("action", string(out.Action)).Msg("Linked")
	r.success("Created symlink: %s → %s", p, filepath.ToSlash(rel))
	return out
}

func (r *Reconciler) success(format string, args ...any) {
	if r.Printer != nil {
		r.Printer.Success(format, args...)
	}
}

func (r *Reconciler) warn(format string, args ...any) {
	if r.Printer != nil {
		r.Printer.Warn(format, args...)
	}
}

func (r *Reconciler) failure(format string, args ...any) {
	if r.Printer != nil {
		r.Printer.Failure(format, args...)
	}
}

func (r *Reconciler) muted(format string, args ...any) {
	if r.Printer != nil {
		r.Printer.Muted(format, args...)
	}
}
