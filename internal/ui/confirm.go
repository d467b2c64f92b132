package ui

import (
	"log/slog"

	"github.com/babarot/tman/internal/ui/confirm"
	tea "github.com/charmbracelet/bubbletea"
)

// Confirm asks a yes/no question answered by a single key press. Anything
// but an explicit yes, including a failure to run the prompt, is a no.
func Confirm(prompt string, opts ...tea.ProgramOption) bool {
	m := confirm.New()
	m.Prompt = prompt
	m.DefaultValue = confirm.Denied
	m.Immediately = true

	p := tea.NewProgram(&m, opts...)
	if _, err := p.Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false
	}

	return m.Selected().IsAccepted()
}
