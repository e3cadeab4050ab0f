package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thedittmer/mlb-wire/internal/daterange"
	"github.com/thedittmer/mlb-wire/internal/models"
)

var testWindow = daterange.Window{
	Start:       time.Date(2025, 7, 14, 14, 0, 0, 0, time.UTC),
	End:         time.Date(2025, 7, 15, 14, 0, 0, 0, time.UTC),
	Description: "in the last 24 hours",
	TotalDays:   1,
}

func TestRenderArticlesAndSummary(t *testing.T) {
	articles := []models.MatchedArticle{{
		Article: models.Article{
			Title:       "Yankees Sign Free Agent Pitcher",
			Description: "One-year deal.",
			Link:        "https://www.mlb.com/news/1",
			Published:   time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC),
			FeedSource:  "MLB.com",
		},
		MatchReason: "Matches team: Yankees",
	}}
	stats := models.Stats{
		SourcesAttempted:  2,
		SourcesSuccessful: 1,
		ItemsChecked:      7,
		ItemsMatched:      1,
		UniqueArticles:    1,
		SourcesFailed:     []string{"MLB Trade News"},
	}

	out := Render(articles, stats, testWindow, Options{})

	for _, want := range []string{
		"in the last 24 hours",
		"Yankees Sign Free Agent Pitcher",
		"MLB.com",
		"Matches team: Yankees",
		"One-year deal.",
		"https://www.mlb.com/news/1",
		"1/2",
		"MLB Trade News",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderCompactOmitsDescription(t *testing.T) {
	articles := []models.MatchedArticle{{
		Article:     models.Article{Title: "Cubs recalled pitcher", Description: "From Iowa."},
		MatchReason: "General MLB news",
	}}
	out := Render(articles, models.Stats{}, testWindow, Options{Compact: true})
	assert.Contains(t, out, "Cubs recalled pitcher")
	assert.NotContains(t, out, "From Iowa.")
}

func TestRenderEmptyStates(t *testing.T) {
	out := Render(nil, models.Stats{}, testWindow, Options{})
	assert.Contains(t, out, "No matching articles found in the last 24 hours.")

	out = Render(nil, models.Stats{}, testWindow, Options{NoSources: true})
	assert.Contains(t, out, "No sources selected.")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("ab", 150)
	got := truncate(long, 200)
	assert.Equal(t, 203, len([]rune(got)))
}

func TestApplyThemeKeepsRendering(t *testing.T) {
	ApplyTheme(false, "#FF0000")
	t.Cleanup(func() { ApplyTheme(true, "#2DA44E") })

	out := Render(nil, models.Stats{}, testWindow, Options{})
	assert.Contains(t, out, "in the last 24 hours")
}
