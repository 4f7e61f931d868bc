package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputForm is the single-line "add item" field.
type inputForm struct {
	ti textinput.Model
}

func newInputForm(placeholder string) inputForm {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	return inputForm{ti: ti}
}

func (f *inputForm) SetPlaceholder(s string) { f.ti.Placeholder = s }

func (f *inputForm) Focus() tea.Cmd { return f.ti.Focus() }

func (f *inputForm) Blur() { f.ti.Blur() }

func (f inputForm) Focused() bool { return f.ti.Focused() }

func (f inputForm) Value() string { return f.ti.Value() }

func (f *inputForm) SetWidth(w int) { f.ti.Width = w }

// Submit hands back the trimmed text and clears the field. Blank input is
// refused and left in place.
func (f *inputForm) Submit() (string, bool) {
	text := strings.TrimSpace(f.ti.Value())
	if text == "" {
		return "", false
	}
	f.ti.SetValue("")
	return text, true
}

func (f inputForm) Update(msg tea.Msg) (inputForm, tea.Cmd) {
	var cmd tea.Cmd
	f.ti, cmd = f.ti.Update(msg)
	return f, cmd
}

func (f inputForm) View() string {
	title := mutedStyle.Render("Add  (a)")
	if f.Focused() {
		title = accentStyle.Render("Add") + mutedStyle.Render("  enter to save · esc to leave")
	}
	return formBorder.Render(title + "\n" + f.ti.View())
}
