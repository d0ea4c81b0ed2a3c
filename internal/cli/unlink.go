package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/ailink/internal/setup"
)

func newUnlinkCmd(flags *globalFlags, build buildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink [path...]",
		Short: "Remove symlinks to the canonical document",
		Long: `Remove the given files, or every target when none are named, if they are
symlinks to the canonical document, and drop them from the ignore file.
Only symlinks to the canonical document are removed; the document itself
is kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, build)
			if err != nil {
				return err
			}

			res, err := s.runner.Unlink(args)
			if errors.Is(err, setup.ErrUnlinkDeclined) {
				s.printer.Warn("Nothing removed")
				return nil
			}
			if err != nil {
				return err
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("failed to remove %d symlink(s)", len(res.Failed))
			}
			return nil
		},
	}
}
