package trips

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"tripcal/internal/logs"
)

type frontmatter struct {
	ID     string `yaml:"id,omitempty"`
	Date   string `yaml:"date,omitempty"`
	Depart string `yaml:"depart,omitempty"`
	From   string `yaml:"from,omitempty"`
	To     string `yaml:"to,omitempty"`
	Seats  int    `yaml:"seats,omitempty"`
	Price  int    `yaml:"price,omitempty"`
	Status string `yaml:"status,omitempty"`
	Color  string `yaml:"color,omitempty"`
}

// ReadTrip reads a trip file and parses its frontmatter and content
func ReadTrip(path string) (Trip, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Trip{}, err
	}

	fm, body, err := parseFrontmatter(content)
	if err != nil {
		return Trip{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	status := Status(strings.ToLower(fm.Status))
	switch status {
	case StatusDraft, StatusPublished, StatusFull:
	default:
		status = StatusDraft
	}

	return Trip{
		ID:       fm.ID,
		Filename: filepath.Base(path),
		Title:    extractTitle(body),
		Date:     fm.Date,
		Depart:   fm.Depart,
		From:     fm.From,
		To:       fm.To,
		Seats:    fm.Seats,
		Price:    fm.Price,
		Status:   status,
		Color:    fm.Color,
		Preview:  extractPreview(body),
		Content:  body,
	}, nil
}

// parseFrontmatter splits YAML frontmatter from the markdown body. Content
// without a frontmatter block is all body.
func parseFrontmatter(content []byte) (frontmatter, string, error) {
	var fm frontmatter
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return fm, string(content), nil
	}

	end := 0
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			end = i
			break
		}
	}
	if end == 0 {
		return fm, string(content), nil
	}

	if err := yaml.Unmarshal(bytes.Join(lines[1:end], []byte("\n")), &fm); err != nil {
		return fm, "", fmt.Errorf("frontmatter: %w", err)
	}

	body := bytes.Join(lines[end+1:], []byte("\n"))
	return fm, strings.TrimLeft(string(body), "\n"), nil
}

// ScanTrips reads every *.md file in dir, sorted by date then filename.
// Unreadable files are logged and skipped; a missing dir is empty.
func ScanTrips(dir string) ([]Trip, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Trip
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		trip, err := ReadTrip(filepath.Join(dir, e.Name()))
		if err != nil {
			logs.Logger.Warnw("skipping trip file", "file", e.Name(), "error", err)
			continue
		}
		out = append(out, trip)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Filename < out[j].Filename
	})
	return out, nil
}

func extractTitle(markdown string) string {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var title string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			if n.(*ast.Heading).Level == 1 {
				title = string(n.Text(source))
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})

	if title == "" {
		title = "Untitled trip"
	}
	return title
}

func extractPreview(markdown string) string {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var preview strings.Builder
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph:
			if preview.Len() > 0 {
				return ast.WalkStop, nil
			}
			preview.WriteString(string(n.Text(source)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	p := preview.String()
	if len([]rune(p)) > 60 {
		p = string([]rune(p)[:57]) + "..."
	}
	return p
}
