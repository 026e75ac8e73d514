package messages

import (
	tea "github.com/charmbracelet/bubbletea"

	"tripcal/internal/agenda"
	"tripcal/internal/calendar"
	"tripcal/internal/locale"
)

// DayPressedMsg is sent when an enabled date cell is pressed
type DayPressedMsg struct {
	Date calendar.CalendarDate
}

// PressRejectedMsg is sent when a press hits a disabled or blocked day
type PressRejectedMsg struct {
	ISODate string
}

// JumpToDateMsg moves the cursor to a date
type JumpToDateMsg struct {
	Date string
}

// LocaleChangedMsg switches the display locale
type LocaleChangedMsg struct {
	Locale locale.Locale
}

// CloseOverlayMsg dismisses the active input overlay
type CloseOverlayMsg struct{}

// SourcesChangedMsg signals that trip or blackout files changed on disk
type SourcesChangedMsg struct{}

// MarksLoadedMsg carries a freshly loaded agenda snapshot
type MarksLoadedMsg struct {
	Snapshot agenda.Snapshot
	Err      error
}

// CloseOverlay returns a command that dismisses the active overlay.
func CloseOverlay() tea.Cmd {
	return func() tea.Msg {
		return CloseOverlayMsg{}
	}
}
