package prompt

import (
	"github.com/agentx-labs/ailink/internal/targets"
)

// Prompter collects the user's decisions.
type Prompter interface {
	// SelectTargets presents every candidate pre-checked and returns the
	// confirmed paths in candidate order.
	SelectTargets(message string, candidates []targets.Candidate) ([]string, error)
	// Confirm asks a yes/no question, returning def on an empty answer.
	Confirm(question string, def bool) (bool, error)
}

// Auto accepts every default without prompting: all candidates are selected
// and every question is answered yes.
type Auto struct{}

// SelectTargets returns all candidate paths.
func (Auto) SelectTargets(_ string, candidates []targets.Candidate) ([]string, error) {
	return targets.Paths(candidates), nil
}

// Confirm always returns true.
func (Auto) Confirm(string, bool) (bool, error) {
	return true, nil
}
