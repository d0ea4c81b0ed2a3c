// Package ui renders user-facing progress lines and tables.
package ui

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

const (
	SuccessIcon = "✓"
	FailureIcon = "✗"
	WarningIcon = "⚠"
)

// Printer writes styled status lines. Colour is only applied when Color is true.
type Printer struct {
	out   io.Writer
	color bool

	title   lipgloss.Style
	heading lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter returns a Printer writing to out.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{
		out:     out,
		color:   color,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.out }

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) line(s lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.out, p.render(s, fmt.Sprintf(format, args...)))
}

// Title prints a bold banner line surrounded by blank lines.
func (p *Printer) Title(format string, args ...any) {
	fmt.Fprintln(p.out)
	p.line(p.title, format, args...)
	fmt.Fprintln(p.out)
}

// Heading prints a section heading preceded by a blank line.
func (p *Printer) Heading(format string, args ...any) {
	fmt.Fprintln(p.out)
	p.line(p.heading, format, args...)
}

// Success prints a line prefixed with a check mark.
func (p *Printer) Success(format string, args ...any) {
	p.line(p.success, SuccessIcon+" "+format, args...)
}

// Warn prints a line prefixed with a warning sign.
func (p *Printer) Warn(format string, args ...any) {
	p.line(p.warn, WarningIcon+" "+format, args...)
}

// Failure prints a line prefixed with a cross.
func (p *Printer) Failure(format string, args ...any) {
	p.line(p.failure, FailureIcon+" "+format, args...)
}

// Muted prints a de-emphasised line.
func (p *Printer) Muted(format string, args ...any) {
	p.line(p.muted, format, args...)
}

// Plain prints an unstyled line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Table renders rows under header without borders.
func Table(header []string, rows [][]string) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()

	return buf.String()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
