package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/ailink/internal/branding"
	"github.com/agentx-labs/ailink/internal/config"
	"github.com/agentx-labs/ailink/internal/setup"
	"github.com/agentx-labs/ailink/internal/ui"
)

// buildInfo is injected via ldflags at build time.
type buildInfo struct {
	version string
	commit  string
	date    string
}

// globalFlags are shared by the root command and its subcommands.
type globalFlags struct {
	dir     string
	verbose int
}

func newRootCmd(build buildInfo) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` keeps the configuration files of several AI coding assistants
(GEMINI.md, CLAUDE.md, .github/copilot-instructions.md, .cursorrules, .clinerules,
.windsurfrules) in sync by making each one a relative symlink to a single
Instructions.md document.

Run it in a project directory to create the document if needed, pick which
files to link, and optionally add the links to .gitignore.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd, flags, build)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "C", ".", "Project directory to operate in")
	pf.CountVarP(&flags.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	pf.BoolP("yes", "y", false, "Run without prompts: link every target and update the ignore file")
	pf.String("canonical", branding.CanonicalFile(), "Canonical instructions document, relative to the project directory")
	pf.String("ignore-file", branding.IgnoreFile(), "Ignore manifest that receives the link paths")
	pf.Bool("no-tui", false, "Use line prompts instead of the interactive checklist")

	bindings := map[string]string{
		config.KeyYes:        "yes",
		config.KeyCanonical:  "canonical",
		config.KeyIgnoreFile: "ignore-file",
		config.KeyNoTUI:      "no-tui",
	}
	for key, name := range bindings {
		// Cannot fail: every flag above is defined.
		_ = config.BindFlag(key, pf.Lookup(name))
	}

	cmd.AddCommand(
		newStatusCmd(flags, build),
		newUnlinkCmd(flags, build),
		newDoctorCmd(flags, build),
		newConfigCmd(),
		newVersionCmd(build),
	)
	return cmd
}

func runSetup(cmd *cobra.Command, flags *globalFlags, build buildInfo) error {
	s, err := newSession(cmd, flags, build)
	if err != nil {
		return err
	}

	s.printer.Title("%s Setup", branding.DisplayName())

	_, err = s.runner.Run()
	if errors.Is(err, setup.ErrNothingSelected) {
		s.printer.Warn("No files selected. Exiting...")
		return nil
	}
	return err
}

// Execute runs the root command with build info injected via ldflags and
// reports any error on stderr.
func Execute(version, commit, date string) error {
	cmd := newRootCmd(buildInfo{version: version, commit: commit, date: date})
	if err := cmd.Execute(); err != nil {
		p := ui.NewPrinter(os.Stderr, ui.IsTerminal(os.Stderr))
		p.Failure("Error: %v", err)
		return err
	}
	return nil
}
