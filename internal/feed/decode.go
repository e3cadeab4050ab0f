package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
	"github.com/mmcdole/gofeed/rss"
)

// Decode reads a whole feed document and returns its entries in document
// order. Unrecognised or malformed documents yield a *FeedParseError.
func Decode(r io.Reader) ([]RawItem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FeedParseError{Err: err}
	}

	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeRSS:
		return decodeRSS(data)
	case gofeed.FeedTypeAtom:
		return decodeAtom(data)
	case gofeed.FeedTypeJSON:
		return nil, &FeedParseError{Err: errors.New("JSON feeds are not supported")}
	}

	if rootElement(data) == "channel" {
		return decodeRSS(wrapChannel(data))
	}
	return nil, &FeedParseError{Err: gofeed.ErrFeedTypeNotDetected}
}

func decodeRSS(data []byte) ([]RawItem, error) {
	parser := rss.Parser{}
	doc, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &FeedParseError{Err: err}
	}

	items := make([]RawItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		raw := RawItem{
			Title:       PlainValue(it.Title),
			Link:        PlainValue(it.Link),
			PubDate:     it.PubDate,
			Description: it.Description,
			Content:     it.Content,
			Author:      it.Author,
		}
		if it.Source != nil {
			raw.Source = TextValue(it.Source.Title)
		}
		if raw.Author == "" && it.DublinCoreExt != nil && len(it.DublinCoreExt.Creator) > 0 {
			raw.Author = it.DublinCoreExt.Creator[0]
		}
		items = append(items, raw)
	}
	return items, nil
}

func decodeAtom(data []byte) ([]RawItem, error) {
	parser := atom.Parser{}
	doc, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &FeedParseError{Err: err}
	}

	items := make([]RawItem, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		raw := RawItem{
			Title:     TextValue(e.Title),
			Link:      atomLink(e.Links),
			Published: e.Published,
			Updated:   e.Updated,
			Summary:   e.Summary,
		}
		if e.Content != nil {
			raw.Content = e.Content.Value
		}
		if e.Source != nil {
			raw.Source = TextValue(e.Source.Title)
		}
		if len(e.Authors) > 0 && e.Authors[0] != nil {
			raw.Author = e.Authors[0].Name
		}
		items = append(items, raw)
	}
	return items, nil
}

// atomLink prefers the alternate link, then any link with an href.
func atomLink(links []*atom.Link) Value {
	var fallback Value
	for _, l := range links {
		if l == nil || l.Href == "" {
			continue
		}
		if l.Rel == "" || l.Rel == "alternate" {
			return HrefValue(l.Href)
		}
		if fallback.Kind == Absent {
			fallback = HrefValue(l.Href)
		}
	}
	return fallback
}

func rootElement(data []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			return ""
		}
		if se, ok := tok.(xml.StartElement); ok {
			return strings.ToLower(se.Name.Local)
		}
	}
}

// wrapChannel turns a document rooted at <channel> into RSS 2.0.
func wrapChannel(data []byte) []byte {
	body := data
	if i := bytes.Index(bytes.ToLower(data), []byte("<channel")); i >= 0 {
		body = data[i:]
	}
	return []byte(fmt.Sprintf(`<rss version="2.0">%s</rss>`, body))
}
