package prompt

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agentx-labs/ailink/internal/targets"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4D96FF"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// Checklist selects targets with an interactive bubbletea list. Yes/no
// questions fall back to line prompts on the same streams.
type Checklist struct {
	in  io.Reader
	out io.Writer
	*Console
}

// NewChecklist returns a Checklist bound to a terminal's input and output.
func NewChecklist(in io.Reader, out io.Writer) *Checklist {
	return &Checklist{in: in, out: out, Console: NewConsole(in, out)}
}

// SelectTargets runs the checklist until the user confirms or cancels.
// Cancelling returns an empty selection.
func (c *Checklist) SelectTargets(message string, candidates []targets.Candidate) ([]string, error) {
	m := newChecklistModel(message, candidates)
	program := tea.NewProgram(m, tea.WithInput(c.in), tea.WithOutput(c.out))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running checklist: %w", err)
	}
	result, ok := final.(checklistModel)
	if !ok {
		return nil, fmt.Errorf("unexpected checklist model %T", final)
	}
	return result.selected(), nil
}

type checklistModel struct {
	title     string
	items     []targets.Candidate
	checked   []bool
	cursor    int
	done      bool
	cancelled bool
}

func newChecklistModel(title string, items []targets.Candidate) checklistModel {
	checked := make([]bool, len(items))
	for i := range checked {
		checked[i] = true
	}
	return checklistModel{title: title, items: items, checked: checked}
}

func (m checklistModel) Init() tea.Cmd {
	return nil
}

func (m checklistModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ", "space", "x":
		if len(m.items) > 0 {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}
	case "a":
		all := true
		for _, c := range m.checked {
			all = all && c
		}
		for i := range m.checked {
			m.checked[i] = !all
		}
	}
	return m, nil
}

func (m checklistModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if m.checked[i] {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, item.Path)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space: toggle • a: toggle all • enter: confirm • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m checklistModel) selected() []string {
	if m.cancelled {
		return []string{}
	}
	out := make([]string, 0, len(m.items))
	for i, item := range m.items {
		if m.checked[i] {
			out = append(out, item.Path)
		}
	}
	return out
}
