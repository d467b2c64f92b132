// Package confirm is a small yes/no prompt for bubbletea.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is the answer given to the prompt
type Decision int

const (
	// Undecided means no answer was given and there is no default
	Undecided Decision = iota
	Accepted
	Denied
)

func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted reports whether the prompt was answered positively
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
}

// Model is the bubbletea model of the prompt.
//
// With Immediately set the first key that starts one of the decision texts
// answers the prompt. Otherwise the answer is typed and confirmed with enter.
type Model struct {
	PromptPrefix         string
	Prompt               string
	Placeholder          string
	AcceptedDecisionText string
	DeniedDecisionText   string
	DefaultValue         Decision
	Immediately          bool
	Styles               Styles

	selected Decision
	renderer tea.Model
	done     bool
}

// New returns a prompt answered with y or n, accepting by default
func New() Model {
	return Model{
		PromptPrefix:         "? ",
		AcceptedDecisionText: "y",
		DeniedDecisionText:   "n",
		DefaultValue:         Accepted,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		},
	}
}

// Selected returns the decision, or the default when none was made
func (m *Model) Selected() Decision {
	return m.selected
}

// Value returns the text of the selected decision
func (m *Model) Value() string {
	switch m.selected {
	case Accepted:
		return m.AcceptedDecisionText
	case Denied:
		return m.DeniedDecisionText
	}
	return ""
}

func (m *Model) SetDecision(decision Decision) {
	m.selected = decision
}

func (m *Model) Init() tea.Cmd {
	m.selected = m.DefaultValue
	if m.Immediately {
		m.renderer = &immediateRenderer{m: m}
	} else {
		m.renderer = &inputRenderer{m: m}
	}
	return m.renderer.Init()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.renderer.Update(msg)
}

func (m *Model) View() string {
	return m.renderer.View()
}
