package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/ailink/internal/scanner"
	"github.com/agentx-labs/ailink/internal/ui"
)

func newStatusCmd(flags *globalFlags, build buildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which assistant files link to the canonical document",
		Long: `List every target file with its current state and whether the ignore file
already covers it. Nothing is changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags, build)
			if err != nil {
				return err
			}
			return printStatus(s)
		},
	}
}

func printStatus(s *session) error {
	st, err := s.runner.Status()
	if err != nil {
		return err
	}
	p := s.printer
	name := s.runner.CanonicalName

	p.Heading("Project: %s", s.root)
	if s.project.Path != "" {
		p.Muted("Project file: %s", filepath.Base(s.project.Path))
	}
	if st.CanonicalExists {
		p.Success("%s exists", name)
	} else {
		p.Warn("%s not found", name)
	}
	fmt.Fprintln(p.Writer())

	rows := make([][]string, 0, len(st.Targets))
	for _, t := range st.Targets {
		target := t.Target
		if target == "" {
			target = "-"
		}
		ignored := "no"
		if t.Ignored {
			ignored = "yes"
		}
		rows = append(rows, []string{t.Candidate.Path, string(t.Candidate.Tool), stateLabel(t.State), target, ignored})
	}
	fmt.Fprint(p.Writer(), ui.Table([]string{"File", "Tool", "State", "Target", "Ignored"}, rows))

	fmt.Fprintln(p.Writer())
	p.Plain("%d of %d files linked to %s", st.Linked(), len(st.Targets), name)
	if s.logFile != "" {
		p.Muted("Log file: %s", s.logFile)
	}
	return nil
}

func stateLabel(s scanner.State) string {
	switch s {
	case scanner.Absent:
		return "missing"
	case scanner.ValidSymlink:
		return "linked"
	case scanner.ForeignSymlink:
		return "other link"
	case scanner.RegularFile:
		return "file"
	default:
		return "unreadable"
	}
}
