package monthlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tripcal/internal/locale"
	"tripcal/internal/tui/messages"
	"tripcal/internal/tui/theme"
)

const localePickerRows = 8

// LocalePickerModel is a fuzzy-searchable list of display locales.
type LocalePickerModel struct {
	textInput textinput.Model
	current   locale.Locale
	matches   []locale.Locale
	selected  int
}

func NewLocalePickerModel(current locale.Locale) LocalePickerModel {
	ti := textinput.New()
	ti.Placeholder = "Search locales..."
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 30

	m := LocalePickerModel{
		textInput: ti,
		current:   current,
	}
	m.applyFilter()
	for i, l := range m.matches {
		if l.String() == current.String() {
			m.selected = i
		}
	}
	return m
}

func (m LocalePickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LocalePickerModel) applyFilter() {
	m.matches = locale.Search(m.textInput.Value())
	if m.selected >= len(m.matches) {
		m.selected = max(0, len(m.matches)-1)
	}
}

// Selected returns the highlighted locale, if any.
func (m LocalePickerModel) Selected() (locale.Locale, bool) {
	if len(m.matches) == 0 {
		return locale.Locale{}, false
	}
	return m.matches[m.selected], true
}

// Update handles typing and list navigation. Letters go to the search
// field, so the list moves with arrows and ctrl+n/ctrl+p.
func (m LocalePickerModel) Update(msg tea.Msg) (LocalePickerModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, messages.CloseOverlay()
		case "enter":
			l, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return messages.LocaleChangedMsg{Locale: l} }
		case "down", "ctrl+n":
			if m.selected < len(m.matches)-1 {
				m.selected++
			}
			return m, nil
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m LocalePickerModel) View() string {
	var sb strings.Builder
	sb.WriteString(theme.ModalTitle.Render("Display locale"))
	sb.WriteString("\n\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.matches) == 0 {
		sb.WriteString(theme.Muted.Render("  no matching locale"))
		sb.WriteString("\n")
	}

	// keep the selection inside a fixed window
	start := 0
	if m.selected >= localePickerRows {
		start = m.selected - localePickerRows + 1
	}
	end := min(start+localePickerRows, len(m.matches))
	for i := start; i < end; i++ {
		l := m.matches[i]
		line := fmt.Sprintf("%-6s %s", l.String(), l.SelfName())
		if l.String() == m.current.String() {
			line += theme.Muted.Render(" (current)")
		}
		if i == m.selected {
			sb.WriteString(theme.ListCursor.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(theme.ModalHelp.Render("↑/↓: move  enter: select  esc: cancel"))
	return theme.ModalBox.Render(sb.String())
}
