package monthlist

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tripcal/internal/calendar"
	"tripcal/internal/tui/messages"
	"tripcal/internal/tui/theme"
)

var errDateFormat = errors.New("invalid date format")

// DateInputModel is the "/" jump-to-date prompt.
type DateInputModel struct {
	textInput textinput.Model
	today     time.Time
	err       error
}

func NewDateInputModel(today time.Time) DateInputModel {
	ti := textinput.New()
	ti.Placeholder = "2026-03-15, +5, tomorrow"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 30

	return DateInputModel{
		textInput: ti,
		today:     day(today),
	}
}

func (m DateInputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update emits JumpToDateMsg on a valid enter and CloseOverlayMsg on esc.
// An unparseable entry keeps the prompt open with an error.
func (m DateInputModel) Update(msg tea.Msg) (DateInputModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, messages.CloseOverlay()
		case "enter":
			parsed, err := ParseDateInput(m.textInput.Value(), m.today)
			if err != nil {
				m.err = err
				return m, nil
			}
			iso := calendar.FormatISO(parsed)
			return m, func() tea.Msg { return messages.JumpToDateMsg{Date: iso} }
		}
	}

	m.err = nil
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// SetError shows err under the prompt, e.g. a date outside the calendar.
func (m *DateInputModel) SetError(err error) {
	m.err = err
}

func (m DateInputModel) View() string {
	var sb strings.Builder
	sb.WriteString(theme.ModalTitle.Render("Jump to date"))
	sb.WriteString("\n\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")
	if m.err != nil {
		sb.WriteString(theme.Error.Render(m.err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(theme.ModalHelp.Render("enter: jump  esc: cancel"))
	return theme.ModalBox.Render(sb.String())
}

// ParseDateInput understands YYYY-MM-DD, MM-DD (this year), +N/-N days,
// today, tomorrow and yesterday. Results are UTC midnight.
func ParseDateInput(input string, today time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	today = day(today)

	if input == "" {
		return time.Time{}, errDateFormat
	}

	if input[0] == '+' || input[0] == '-' {
		days, err := strconv.Atoi(input[1:])
		if err != nil {
			return time.Time{}, errDateFormat
		}
		if input[0] == '-' {
			days = -days
		}
		return today.AddDate(0, 0, days), nil
	}

	switch input {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	if parsed, err := calendar.ParseISO(input); err == nil {
		return parsed, nil
	}

	if parsed, err := time.Parse("01-02", input); err == nil {
		// Feb 29 parses against year 0 and would roll into March
		d := calendar.UTCDate(today.Year(), parsed.Month(), parsed.Day())
		if d.Day() != parsed.Day() {
			return time.Time{}, errDateFormat
		}
		return d, nil
	}

	return time.Time{}, errDateFormat
}
