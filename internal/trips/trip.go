package trips

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripcal/internal/calendar"
)

// Status is the publishing state of a trip draft.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusFull      Status = "full"
)

// ErrNoDate is returned for a trip without a usable departure date.
var ErrNoDate = errors.New("trip has no valid date")

// Trip is a ride offer kept as a markdown file with YAML frontmatter
type Trip struct {
	ID       string `json:"id"`               // From YAML frontmatter (uuid)
	Filename string `json:"filename"`         // Filename in the trips directory
	Title    string `json:"title"`            // Extracted from first H1 in markdown
	Date     string `json:"date"`             // ISO departure date
	Depart   string `json:"depart,omitempty"` // HH:MM, optional
	From     string `json:"from"`
	To       string `json:"to"`
	Seats    int    `json:"seats"`
	Price    int    `json:"price,omitempty"`   // minor currency units
	Status   Status `json:"status"`            // draft, published or full
	Color    string `json:"color,omitempty"`   // calendar highlight, overrides the theme
	Preview  string `json:"preview,omitempty"` // First lines of content
	Content  string `json:"-"`                 // Full markdown content (without frontmatter)
}

// NewTrip starts a draft for the given date and route.
func NewTrip(date, from, to string) (Trip, error) {
	if _, err := calendar.ParseISO(date); err != nil {
		return Trip{}, fmt.Errorf("%w: %v", ErrNoDate, err)
	}
	title := from + " → " + to
	return Trip{
		ID:      uuid.NewString(),
		Title:   title,
		Date:    date,
		From:    from,
		To:      to,
		Seats:   3,
		Status:  StatusDraft,
		Content: "# " + title + "\n",
	}, nil
}

// Day returns the departure date at UTC midnight.
func (t Trip) Day() (time.Time, error) {
	d, err := calendar.ParseISO(t.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoDate, err)
	}
	return d, nil
}

// Bookable reports whether riders can still pick this trip's day.
func (t Trip) Bookable() bool {
	return t.Status == StatusPublished && t.Seats > 0
}
