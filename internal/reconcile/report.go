package reconcile

import "errors"

// ErrAllFailed is returned by Report.Err when every attempted candidate failed.
var ErrAllFailed = errors.New("no symlinks could be created")

// Action is what happened to one candidate.
type Action string

const (
	ActionCreated  Action = "created"
	ActionReplaced Action = "replaced"
	ActionSkipped  Action = "skipped"
	ActionFailed   Action = "failed"
)

// Outcome records the result for one candidate path.
type Outcome struct {
	Path   string
	Action Action
	// Target is the relative link target written, when a link was created.
	Target string
	// Previous is the classification the path had before reconciliation.
	Previous string
	Err      error
}

// Report lists outcomes in selection order.
type Report struct {
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

func (r *Report) paths(match func(Action) bool) []string {
	var out []string
	for _, o := range r.Outcomes {
		if match(o.Action) {
			out = append(out, o.Path)
		}
	}
	return out
}

// Linked returns the paths that now link to the canonical document.
func (r *Report) Linked() []string {
	return r.paths(func(a Action) bool { return a == ActionCreated || a == ActionReplaced })
}

// Skipped returns the paths the user chose to leave alone.
func (r *Report) Skipped() []string {
	return r.paths(func(a Action) bool { return a == ActionSkipped })
}

// Failed returns the outcomes that failed.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Action == ActionFailed {
			out = append(out, o)
		}
	}
	return out
}

// AllFailed reports whether at least one candidate was attempted and every
// attempted candidate failed. Skipped candidates were not attempted.
func (r *Report) AllFailed() bool {
	attempted, failed := 0, 0
	for _, o := range r.Outcomes {
		switch o.Action {
		case ActionSkipped:
			continue
		case ActionFailed:
			failed++
		}
		attempted++
	}
	return attempted > 0 && failed == attempted
}

// Err returns ErrAllFailed joined with each failure when AllFailed is true.
func (r *Report) Err() error {
	if !r.AllFailed() {
		return nil
	}
	errs := []error{ErrAllFailed}
	for _, o := range r.Failed() {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}
