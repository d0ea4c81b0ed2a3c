package setup

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agentx-labs/ailink/internal/canonical"
	"github.com/agentx-labs/ailink/internal/ignorefile"
	"github.com/agentx-labs/ailink/internal/prompt"
	"github.com/agentx-labs/ailink/internal/reconcile"
	"github.com/agentx-labs/ailink/internal/scanner"
	"github.com/agentx-labs/ailink/internal/targets"
	"github.com/agentx-labs/ailink/internal/ui"
)

// ErrNothingSelected ends a run early when the user selects no files. It is
// not a failure.
var ErrNothingSelected = errors.New("no files selected")

// Options carries the user's decisions through the rest of the pipeline.
type Options struct {
	Selected       []string
	AddToIgnore    bool
	NonInteractive bool
}

// Runner holds everything a run needs.
type Runner struct {
	Root           string
	CanonicalName  string
	IgnoreFile     string
	Candidates     []targets.Candidate
	Prompter       prompt.Prompter
	NonInteractive bool
	Printer        *ui.Printer
	Logger         zerolog.Logger
}

// Result summarises a completed run.
type Result struct {
	CanonicalCreated bool
	Scan             []scanner.Result
	Options          Options
	Report           *reconcile.Report
	IgnoreAdded      []string
	// IgnoreErr is set when the manifest could not be updated. It does not
	// fail the run.
	IgnoreErr error
}

func (r *Runner) canonicalPath() (string, error) {
	return canonical.Path(r.Root, r.CanonicalName)
}

func (r *Runner) ignorePath() string {
	if filepath.IsAbs(r.IgnoreFile) {
		return r.IgnoreFile
	}
	return filepath.Join(r.Root, r.IgnoreFile)
}

// Run executes the whole pipeline. It returns ErrNothingSelected when the user
// selects nothing and reconcile.ErrAllFailed when no candidate could be linked.
func (r *Runner) Run() (*Result, error) {
	res := &Result{}
	p := r.Printer

	canonicalAbs, err := r.canonicalPath()
	if err != nil {
		return nil, err
	}

	exists, err := canonical.Exists(r.Root, r.CanonicalName)
	if err != nil {
		return nil, err
	}
	if exists {
		p.Success("%s already exists", r.CanonicalName)
	} else {
		p.Warn("%s not found. Creating it with default content...", r.CanonicalName)
		created, err := canonical.Ensure(r.Root, r.CanonicalName)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", r.CanonicalName, err)
		}
		res.CanonicalCreated = created
		if created {
			p.Success("%s created successfully", r.CanonicalName)
			r.Logger.Info().Str("path", canonicalAbs).Msg("Created canonical document")
		}
	}

	p.Heading("Checking existing symlinks...")
	res.Scan = scanner.Scan(r.Root, canonicalAbs, r.Candidates)
	r.reportScan(res.Scan)

	opts, err := r.Select(res.Scan)
	if err != nil {
		return res, err
	}
	res.Options = opts

	p.Heading("Creating symlinks...")
	rec := &reconcile.Reconciler{
		Root:           r.Root,
		Canonical:      canonicalAbs,
		Prompter:       r.Prompter,
		NonInteractive: opts.NonInteractive,
		Printer:        p,
		Logger:         r.Logger.With().Str("component", "reconcile").Logger(),
	}
	res.Report = rec.Run(opts.Selected, res.Scan)

	if opts.AddToIgnore {
		res.IgnoreAdded, res.IgnoreErr = r.updateIgnore(res.Report.Linked())
	}

	if err := res.Report.Err(); err != nil {
		return res, err
	}

	r.reportDone(res)
	return res, nil
}

// reportScan lists links that already point at the canonical document and
// warns about entries that linking would overwrite or that could not be read.
func (r *Runner) reportScan(results []scanner.Result) {
	p := r.Printer
	valid := scanner.Filter(results, scanner.ValidSymlink)
	for _, v := range valid {
		p.Muted("  %s → %s", v.Candidate.Path, r.CanonicalName)
	}
	if len(valid) == 0 {
		p.Muted("  No existing symlinks found")
	}

	for _, u := range scanner.Filter(results, scanner.Unknown) {
		r.Logger.Warn().Err(u.Err).Str("path", u.Candidate.Path).Msg("Could not inspect candidate")
		p.Warn("Could not inspect %s: %v", u.Candidate.Path, u.Err)
	}
	for _, f := range scanner.Filter(results, scanner.RegularFile) {
		p.Warn("%s exists and is not a symlink; linking it will replace its content", f.Candidate.Path)
	}
}

// Select asks which candidates to link and whether to add them to the ignore
// manifest. Non-interactive runs select everything and answer yes.
func (r *Runner) Select(results []scanner.Result) (Options, error) {
	pr := r.Prompter
	if r.NonInteractive || pr == nil {
		pr = prompt.Auto{}
	}
	opts := Options{NonInteractive: r.NonInteractive}

	cands := make([]targets.Candidate, len(results))
	for i, res := range results {
		cands[i] = res.Candidate
	}

	msg := fmt.Sprintf("Select files to link to %s:", r.CanonicalName)
	selected, err := pr.SelectTargets(msg, cands)
	if err != nil {
		return opts, fmt.Errorf("selecting files: %w", err)
	}
	if len(selected) == 0 {
		return opts, ErrNothingSelected
	}
	opts.Selected = selected

	add, err := pr.Confirm(fmt.Sprintf("Add symlink files to %s?", filepath.Base(r.IgnoreFile)), true)
	if err != nil {
		return opts, fmt.Errorf("asking about %s: %w", r.IgnoreFile, err)
	}
	opts.AddToIgnore = add

	r.Logger.Debug().Strs("selected", selected).Bool("addToIgnore", add).Msg("Selection complete")
	return opts, nil
}

func (r *Runner) updateIgnore(linked []string) ([]string, error) {
	if len(linked) == 0 {
		return nil, nil
	}
	p := r.Printer
	p.Heading("Updating %s...", r.IgnoreFile)

	added, err := ignorefile.Add(r.ignorePath(), linked)
	if err != nil {
		r.Logger.Warn().Err(err).Str("file", r.IgnoreFile).Msg("Could not update ignore file")
		p.Failure("Could not update %s: %v", r.IgnoreFile, err)
		return nil, err
	}
	if len(added) == 0 {
		p.Muted("%s All symlinks already in %s", ui.SuccessIcon, r.IgnoreFile)
		return nil, nil
	}
	p.Success("Added %d file(s) to %s", len(added), r.IgnoreFile)
	for _, a := range added {
		p.Muted("  + %s", a)
	}
	return added, nil
}

func (r *Runner) reportDone(res *Result) {
	p := r.Printer
	fmt.Fprintln(p.Writer())
	failed := res.Report.Failed()
	skipped := res.Report.Skipped()
	if len(failed) == 0 && len(skipped) == 0 {
		p.Success("Done! All selected files are now linked to %s", r.CanonicalName)
	} else {
		p.Warn("Done with %d linked, %d skipped, %d failed", len(res.Report.Linked()), len(skipped), len(failed))
		for _, f := range failed {
			p.Failure("  %s: %v", f.Path, f.Err)
		}
	}
	p.Muted("Any changes to %s will be reflected in all linked files.", r.CanonicalName)
}
