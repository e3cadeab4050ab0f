package feed

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"

	"github.com/thedittmer/mlb-wire/internal/models"
)

// UnknownSource labels articles whose origin can't be determined.
const UnknownSource = "Unknown"

type extractor func(RawItem) string

// Each list is tried in order; the first non-blank result wins.
var (
	timestampFields = []extractor{
		func(r RawItem) string { return r.PubDate },
		func(r RawItem) string { return r.Published },
		func(r RawItem) string { return r.Updated },
	}
	titleFields = []extractor{
		unwrapIf(func(r RawItem) Value { return r.Title }, Plain, TextNode),
	}
	descriptionFields = []extractor{
		func(r RawItem) string { return r.Description },
		func(r RawItem) string { return r.Summary },
		func(r RawItem) string { return r.Content },
	}
	linkFields = []extractor{
		unwrapIf(func(r RawItem) Value { return r.Link }, Plain),
		unwrapIf(func(r RawItem) Value { return r.Link }, HrefNode),
		unwrapIf(func(r RawItem) Value { return r.Link }, TextNode),
	}
	sourceFields = []extractor{
		unwrapIf(func(r RawItem) Value { return r.Source }, Plain, TextNode),
		func(r RawItem) string { return r.Author },
		func(r RawItem) string { return hostLabel(first(r, linkFields)) },
	}
)

var spaceRun = regexp.MustCompile(`\s+`)

// Normalize extracts an Article from raw. Items without a parseable
// timestamp or a non-blank title return an *ItemParseError.
func Normalize(raw RawItem) (models.Article, error) {
	published, ok := timestamp(raw)
	if !ok {
		return models.Article{}, &ItemParseError{Reason: "no parseable publish date"}
	}

	title := strings.TrimSpace(first(raw, titleFields))
	if title == "" {
		return models.Article{}, &ItemParseError{Reason: "blank title"}
	}

	source := first(raw, sourceFields)
	if source == "" {
		source = UnknownSource
	}

	return models.Article{
		Title:       title,
		Description: plainText(first(raw, descriptionFields)),
		Link:        strings.TrimSpace(first(raw, linkFields)),
		Published:   published,
		FeedSource:  source,
	}, nil
}

func timestamp(raw RawItem) (time.Time, bool) {
	for _, field := range timestampFields {
		s := strings.TrimSpace(field(raw))
		if s == "" {
			continue
		}
		if t, err := dateparse.ParseIn(s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func first(raw RawItem, fields []extractor) string {
	for _, field := range fields {
		if s := strings.TrimSpace(field(raw)); s != "" {
			return s
		}
	}
	return ""
}

func unwrapIf(get func(RawItem) Value, kinds ...ValueKind) extractor {
	return func(r RawItem) string {
		v := get(r)
		for _, k := range kinds {
			if v.Kind == k {
				s, _ := v.Unwrap()
				return s
			}
		}
		return ""
	}
}

func hostLabel(link string) string {
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// plainText drops markup and entities from feed HTML and collapses whitespace.
func plainText(s string) string {
	if strings.ContainsAny(s, "<&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
