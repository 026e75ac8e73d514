// Package locale formats month titles and weekday headers for an explicit
// locale. Nothing here touches process-wide state; every call takes the
// Locale it formats for.
package locale

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Locale is a supported display locale.
type Locale struct {
	Tag  language.Tag
	code monday.Locale
}

// the first entry is the fallback
var supported = []monday.Locale{
	monday.LocaleEnUS,
	monday.LocaleEnGB,
	monday.LocaleRuRU,
	monday.LocaleUkUA,
	monday.LocaleDeDE,
	monday.LocaleFrFR,
	monday.LocaleEsES,
	monday.LocaleItIT,
	monday.LocalePtBR,
	monday.LocalePlPL,
	monday.LocaleTrTR,
	monday.LocaleJaJP,
	monday.LocaleZhCN,
	monday.LocaleKoKR,
}

var (
	all     []Locale
	matcher language.Matcher
)

func init() {
	tags := make([]language.Tag, len(supported))
	for i, code := range supported {
		tags[i] = language.MustParse(strings.ReplaceAll(string(code), "_", "-"))
		all = append(all, Locale{Tag: tags[i], code: code})
	}
	matcher = language.NewMatcher(tags)
}

// Default is en-US.
func Default() Locale {
	return all[0]
}

// All returns every supported locale, fallback first.
func All() []Locale {
	out := make([]Locale, len(all))
	copy(out, all)
	return out
}

// Resolve maps a BCP 47 tag ("ru", "de-AT", "en_GB") to the closest
// supported locale. Unparseable or unmatched tags give Default.
func Resolve(tag string) Locale {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return Default()
	}
	t, err := language.Parse(tag)
	if err != nil {
		return Default()
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return Default()
	}
	return all[idx]
}

// String is the BCP 47 tag, e.g. "ru-RU".
func (l Locale) String() string {
	return l.Tag.String()
}

// Name is the English display name, e.g. "Russian (Russia)".
func (l Locale) Name() string {
	return display.Tags(language.English).Name(l.Tag)
}

// SelfName is the locale's own name for itself, e.g. "русский (Россия)".
func (l Locale) SelfName() string {
	return display.Self.Name(l.Tag)
}

func (l Locale) format(t time.Time, layout string) string {
	code := l.code
	if code == "" {
		code = monday.LocaleEnUS
	}
	return monday.Format(t, layout, code)
}

// MonthTitle formats an anchor as "March 2024" in the locale.
func (l Locale) MonthTitle(anchor time.Time) string {
	return l.format(anchor.UTC(), "January 2006")
}

// LongDate formats a date for confirmations, e.g. "Friday, 15 March 2024".
func (l Locale) LongDate(t time.Time) string {
	return l.format(t.UTC(), "Monday, 2 January 2006")
}

// reference week starting on Sunday
var sunday = time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)

// WeekdayHeaders returns short weekday names with firstDay (0 = Sunday) in
// column 0.
func (l Locale) WeekdayHeaders(firstDay int) [7]string {
	firstDay = ((firstDay % 7) + 7) % 7
	var out [7]string
	for i := range out {
		out[i] = l.format(sunday.AddDate(0, 0, (firstDay+i)%7), "Mon")
	}
	return out
}

// Search fuzzy-matches query against tags and English and native names.
// An empty query returns every locale.
func Search(query string) []Locale {
	if strings.TrimSpace(query) == "" {
		return All()
	}
	names := make([]string, len(all))
	for i, l := range all {
		names[i] = l.String() + " " + l.Name() + " " + l.SelfName()
	}
	matches := fuzzy.Find(query, names)
	out := make([]Locale, len(matches))
	for i, m := range matches {
		out[i] = all[m.Index]
	}
	return out
}
