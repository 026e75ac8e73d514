package trips

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// WriteTrip writes a Trip to a markdown file with frontmatter
func WriteTrip(trip Trip, path string) error {
	var buf bytes.Buffer

	fm := frontmatter{
		ID:     trip.ID,
		Date:   trip.Date,
		Depart: trip.Depart,
		From:   trip.From,
		To:     trip.To,
		Seats:  trip.Seats,
		Price:  trip.Price,
		Status: string(trip.Status),
		Color:  trip.Color,
	}
	yamlBytes, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}

	buf.WriteString("---\n")
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")
	buf.WriteString(trip.Content)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

var multiDash = regexp.MustCompile(`-+`)

// Slug turns a trip into a filename base: "2024-03-15-almaty-astana".
func Slug(trip Trip) string {
	var b strings.Builder
	for _, r := range strings.ToLower(trip.From + " " + trip.To) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	route := strings.Trim(multiDash.ReplaceAllString(b.String(), "-"), "-")
	if route == "" {
		route = "trip"
	}
	if trip.Date == "" {
		return route
	}
	return trip.Date + "-" + route
}

// UniqueFilename finds a free name in dir: base.md, base_2.md, ...
func UniqueFilename(base, dir string) string {
	candidate := base + ".md"
	if !fileExists(filepath.Join(dir, candidate)) {
		return candidate
	}
	for i := 2; ; i++ {
		candidate = base + "_" + strconv.Itoa(i) + ".md"
		if !fileExists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}

// Create writes a new trip into dir under a unique filename and returns
// the trip with Filename set.
func Create(trip Trip, dir string) (Trip, error) {
	trip.Filename = UniqueFilename(Slug(trip), dir)
	if err := WriteTrip(trip, filepath.Join(dir, trip.Filename)); err != nil {
		return Trip{}, err
	}
	return trip, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
