// Package dedup collapses duplicate articles found across feeds.
package dedup

import (
	"regexp"
	"sort"
	"strings"

	"github.com/thedittmer/mlb-wire/internal/models"
)

var (
	nonWord  = regexp.MustCompile(`[^\p{L}\p{N}\p{Z}\s]`)
	spaceRun = regexp.MustCompile(`[\p{Z}\s]+`)
)

// TitleKey normalizes a title for comparison: punctuation removed,
// whitespace collapsed, lower-cased.
func TitleKey(title string) string {
	key := nonWord.ReplaceAllString(title, "")
	key = spaceRun.ReplaceAllString(key, " ")
	return strings.ToLower(strings.TrimSpace(key))
}

// Articles returns the unique articles, newest first. Ties keep input
// order. An article is dropped if its title key or its exact link was
// already kept, so the newest of a duplicate pair survives.
func Articles(in []models.MatchedArticle) []models.MatchedArticle {
	sorted := append([]models.MatchedArticle(nil), in...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})

	seenTitles := make(map[string]struct{}, len(sorted))
	seenLinks := make(map[string]struct{}, len(sorted))
	out := make([]models.MatchedArticle, 0, len(sorted))

	for _, a := range sorted {
		key := TitleKey(a.Title)
		if _, dup := seenTitles[key]; dup {
			continue
		}
		if _, dup := seenLinks[a.Link]; dup {
			continue
		}
		seenTitles[key] = struct{}{}
		seenLinks[a.Link] = struct{}{}
		out = append(out, a)
	}
	return out
}
