package cli

import (
	"github.com/spf13/cobra"
)

func newDoctorCmd(flags *globalFlags, build buildInfo) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the project's links and ignore file",
		Long: `Check that the project directory accepts symlinks, that the canonical
document exists, and that every link is healthy and ignored. Exits non-zero
when problems remain. With --fix, creates a missing canonical document and
adds linked files to the ignore file; links and files are never replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, build)
			if err != nil {
				return err
			}
			_, err = s.runner.Doctor(s.printer.Writer(), fix)
			return err
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair what can be repaired without replacing files")
	return cmd
}
