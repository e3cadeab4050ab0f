// Package ui renders a finished search for the terminal.
package ui

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/thedittmer/mlb-wire/internal/daterange"
	"github.com/thedittmer/mlb-wire/internal/models"
)

const (
	defaultWidth     = 100
	defaultDescWidth = 200
	DefaultDateFmt   = "Jan 02, 2006 15:04"
)

// Options control presentation only.
type Options struct {
	Compact          bool
	DateFormat       string
	DescriptionWidth int
	Width            int
	NoSources        bool
}

// Width returns the terminal width of stdout, or a default when stdout is
// not a terminal.
func Width() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

// Render formats articles, the run's counters and the window it covered.
func Render(articles []models.MatchedArticle, stats models.Stats, w daterange.Window, opts Options) string {
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFmt
	}
	if opts.DescriptionWidth <= 0 {
		opts.DescriptionWidth = defaultDescWidth
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("MLB transaction news " + w.Description))
	b.WriteString("\n\n")

	switch {
	case opts.NoSources:
		b.WriteString(WarningStyle.Render("No sources selected."))
		b.WriteString("\n")
	case len(articles) == 0:
		b.WriteString(WarningStyle.Render("No matching articles found " + w.Description + "."))
		b.WriteString("\n")
	default:
		for i, a := range articles {
			b.WriteString(renderArticle(i+1, a, opts))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(renderStats(stats, w))
	b.WriteString("\n")
	return b.String()
}

func renderArticle(n int, a models.MatchedArticle, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", DimStyle.Render(fmt.Sprintf("%2d.", n)), TitleStyle.Render(a.Title))
	fmt.Fprintf(&b, "    %s  %s  %s\n",
		SourceStyle.Render(a.FeedSource),
		DateStyle.Render(a.Published.Local().Format(opts.DateFormat)),
		ReasonStyle.Render(a.MatchReason))

	if !opts.Compact {
		if a.Description != "" {
			desc := truncate(a.Description, opts.DescriptionWidth)
			b.WriteString(TextStyle.Width(opts.Width - 4).PaddingLeft(4).Render(desc))
			b.WriteString("\n")
		}
	}
	if a.Link != "" {
		fmt.Fprintf(&b, "    %s\n", LinkStyle.Render(a.Link))
	}
	return b.String()
}

func renderStats(s models.Stats, w daterange.Window) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Summary", ""})
	t.AppendRows([]table.Row{
		{"Window", fmt.Sprintf("%s (%d days)", w.Description, w.TotalDays)},
		{"Sources searched", fmt.Sprintf("%d/%d", s.SourcesSuccessful, s.SourcesAttempted)},
		{"Articles checked", s.ItemsChecked},
		{"Matched", s.ItemsMatched},
		{"Unique", s.UniqueArticles},
	})
	if len(s.SourcesFailed) > 0 {
		t.AppendRow(table.Row{"Failed sources", strings.Join(s.SourcesFailed, ", ")})
	}
	return BoxStyle.Render(t.Render())
}

// truncate cuts s to maxLen runes.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
