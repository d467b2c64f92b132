package confirm

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// newInput builds the text field shared by both renderers. The default
// decision is shown upper-cased in the placeholder: "y/N".
func newInput(m *Model) textinput.Model {
	input := textinput.New()
	if m.Placeholder != "" {
		input.Placeholder = m.Placeholder
	} else {
		accepted, denied := m.AcceptedDecisionText, m.DeniedDecisionText
		switch m.DefaultValue {
		case Accepted:
			accepted = strings.ToUpper(accepted)
		case Denied:
			denied = strings.ToUpper(denied)
		}
		input.Placeholder = accepted + "/" + denied
	}
	if strings.HasSuffix(m.Prompt, " ") {
		input.Prompt = m.Prompt
	} else {
		input.Prompt = m.Prompt + " "
	}
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.TextStyle = m.Styles.Text
	input.CharLimit = max(len(m.AcceptedDecisionText), len(m.DeniedDecisionText))
	input.Focus()
	return input
}

// view renders the prompt prefix, then either the live input or the final
// answer next to the prompt
func view(m *Model, input textinput.Model) string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		render := m.Styles.PromptPrefix.Inline(true).Render
		b.WriteString(render(m.PromptPrefix))
		if !strings.HasSuffix(m.PromptPrefix, " ") {
			b.WriteString(render(" "))
		}
	}

	if m.done {
		if m.Prompt != "" {
			render := m.Styles.Prompt.Inline(true).Render
			b.WriteString(render(m.Prompt))
			b.WriteString(render(" "))
		}
		b.WriteString(m.Value())
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(input.View())
	return b.String()
}

func cancelled(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc
}

// inputRenderer reads a typed answer confirmed with enter
type inputRenderer struct {
	m    *Model
	text textinput.Model
}

func (i *inputRenderer) Init() tea.Cmd {
	i.text = newInput(i.m)
	return nil
}

func (i *inputRenderer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case cancelled(km):
			i.m.SetDecision(Denied)
			i.m.done = true
			return i.m, tea.Quit
		case km.Type == tea.KeyEnter:
			switch k := strings.ToLower(i.text.Value()); {
			case k == "":
			case strings.HasPrefix(k, strings.ToLower(i.m.AcceptedDecisionText)):
				i.m.SetDecision(Accepted)
			case strings.HasPrefix(k, strings.ToLower(i.m.DeniedDecisionText)):
				i.m.SetDecision(Denied)
			}
			i.m.done = true
			return i.m, tea.Quit
		}
	}

	var cmd tea.Cmd
	i.text, cmd = i.text.Update(msg)
	return i.m, cmd
}

func (i *inputRenderer) View() string {
	return view(i.m, i.text)
}

// immediateRenderer answers on the first matching key press
type immediateRenderer struct {
	m    *Model
	text textinput.Model
}

func (i *immediateRenderer) Init() tea.Cmd {
	i.text = newInput(i.m)
	return nil
}

func (i *immediateRenderer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return i.m, nil
	}
	if cancelled(km) {
		i.m.SetDecision(Denied)
		i.m.done = true
		return i.m, tea.Quit
	}

	key := km.String()
	if strings.ContainsFunc(key, func(r rune) bool { return !unicode.IsLetter(r) }) {
		return i.m, nil
	}
	switch strings.ToLower(key) {
	case strings.ToLower(i.m.AcceptedDecisionText[:1]):
		i.m.SetDecision(Accepted)
	case strings.ToLower(i.m.DeniedDecisionText[:1]):
		i.m.SetDecision(Denied)
	default:
		return i.m, nil
	}
	i.m.done = true
	return i.m, tea.Quit
}

func (i *immediateRenderer) View() string {
	return view(i.m, i.text)
}
