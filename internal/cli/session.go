package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/ailink/internal/config"
	"github.com/agentx-labs/ailink/internal/logging"
	"github.com/agentx-labs/ailink/internal/project"
	"github.com/agentx-labs/ailink/internal/prompt"
	"github.com/agentx-labs/ailink/internal/setup"
	"github.com/agentx-labs/ailink/internal/targets"
	"github.com/agentx-labs/ailink/internal/ui"
)

// session is the resolved state shared by commands that act on a project.
type session struct {
	root    string
	project *project.File
	printer *ui.Printer
	runner  *setup.Runner
	logFile string
}

// newSession loads settings in precedence order (flags, environment, project
// file, user config, defaults), configures logging, and builds a setup.Runner
// for the project directory.
func newSession(cmd *cobra.Command, flags *globalFlags, build buildInfo) (*session, error) {
	config.Load()

	root, err := filepath.Abs(flags.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project directory %s is not a directory", root)
	}

	out := cmd.OutOrStdout()
	printer := ui.NewPrinter(out, isTerminal(out))

	pf, err := project.Load(root)
	if err != nil {
		var invalid *project.InvalidError
		if errors.As(err, &invalid) {
			return nil, fmt.Errorf("invalid project file %w", invalid)
		}
		return nil, err
	}
	if err := pf.CheckVersion(build.version); err != nil {
		return nil, err
	}
	if err := config.MergeProject(pf.Settings()); err != nil {
		return nil, err
	}

	stderr := cmd.ErrOrStderr()
	logFile := logging.Setup(logging.Options{
		Verbosity:  flags.verbose,
		Level:      config.Get(config.KeyLogLevel),
		File:       config.Get(config.KeyLogFile),
		MaxSizeMB:  config.GetInt(config.KeyLogMaxSizeMB),
		MaxBackups: config.GetInt(config.KeyLogMaxBackups),
		Console:    stderr,
		NoColor:    !isTerminal(stderr),
	})
	log := logging.For("cli")

	canonicalName := config.Get(config.KeyCanonical)
	cands, err := targets.Build(root, canonicalName, pf.Targets, pf.ExtraTargets, pf.Exclude)
	if err != nil {
		return nil, fmt.Errorf("building target list: %w", err)
	}

	nonInteractive := config.GetBool(config.KeyYes)
	log.Debug().
		Str("root", root).
		Str("canonical", canonicalName).
		Str("projectFile", pf.Path).
		Strs("targets", targets.Paths(cands)).
		Bool("yes", nonInteractive).
		Msg("Session ready")

	return &session{
		root:    root,
		project: pf,
		printer: printer,
		logFile: logFile,
		runner: &setup.Runner{
			Root:           root,
			CanonicalName:  canonicalName,
			IgnoreFile:     config.Get(config.KeyIgnoreFile),
			Candidates:     cands,
			Prompter:       choosePrompter(cmd.InOrStdin(), out, nonInteractive),
			NonInteractive: nonInteractive,
			Printer:        printer,
			Logger:         logging.For("setup"),
		},
	}, nil
}

// choosePrompter picks the checklist on a real terminal, line prompts on any
// other input, and no prompts at all with --yes.
func choosePrompter(in io.Reader, out io.Writer, nonInteractive bool) prompt.Prompter {
	if nonInteractive {
		return prompt.Auto{}
	}
	if isTerminal(in) && isTerminal(out) && !config.GetBool(config.KeyNoTUI) {
		return prompt.NewChecklist(in, out)
	}
	return prompt.NewConsole(in, out)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && ui.IsTerminal(f)
}
