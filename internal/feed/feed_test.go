package feed

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>MLB Trade News</title>
    <item>
      <title>Yankees acquire reliever in trade</title>
      <link>https://www.mlb.com/news/yankees-trade</link>
      <description>&lt;p&gt;The &lt;b&gt;Yankees&lt;/b&gt; made a deal.&lt;/p&gt;</description>
      <pubDate>Mon, 14 Jul 2025 12:00:00 +0000</pubDate>
      <source url="https://www.mlb.com">MLB.com</source>
    </item>
    <item>
      <title>Dodgers option infielder</title>
      <link>https://www.espn.com/mlb/story/1</link>
      <pubDate>Mon, 14 Jul 2025 10:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Roster Moves</title>
  <entry>
    <title>Cubs recall pitcher</title>
    <link rel="self" href="https://example.com/self/1"/>
    <link rel="alternate" href="https://www.cubs.com/news/recall"/>
    <summary>Recalled from Triple-A.</summary>
    <published>2025-07-14T09:00:00Z</published>
    <updated>2025-07-14T11:00:00Z</updated>
    <author><name>Beat Writer</name></author>
  </entry>
  <entry>
    <title>Mets place outfielder on injured list</title>
    <link href="https://example.com/mets"/>
    <content>Placed on the 10-day IL.</content>
    <updated>2025-07-13T18:30:00Z</updated>
  </entry>
</feed>`

const bareChannelFixture = `<?xml version="1.0"?>
<channel>
  <title>Bare</title>
  <item>
    <title>Braves sign free agent</title>
    <link>https://braves.example.org/sign</link>
    <pubDate>Sun, 13 Jul 2025 08:00:00 GMT</pubDate>
  </item>
</channel>`

func TestDecodeRSS(t *testing.T) {
	items, err := Decode(strings.NewReader(rssFixture))
	require.NoError(t, err)
	require.Len(t, items, 2)

	it := items[0]
	assert.Equal(t, PlainValue("Yankees acquire reliever in trade"), it.Title)
	assert.Equal(t, PlainValue("https://www.mlb.com/news/yankees-trade"), it.Link)
	assert.Equal(t, "Mon, 14 Jul 2025 12:00:00 +0000", it.PubDate)
	assert.Equal(t, TextValue("MLB.com"), it.Source)
	assert.Empty(t, it.Published)
	assert.Equal(t, Absent, items[1].Source.Kind)
}

func TestDecodeAtom(t *testing.T) {
	items, err := Decode(strings.NewReader(atomFixture))
	require.NoError(t, err)
	require.Len(t, items, 2)

	it := items[0]
	assert.Equal(t, TextValue("Cubs recall pitcher"), it.Title)
	assert.Equal(t, HrefValue("https://www.cubs.com/news/recall"), it.Link)
	assert.Equal(t, "Recalled from Triple-A.", it.Summary)
	assert.Equal(t, "Beat Writer", it.Author)
	assert.NotEmpty(t, it.Published)
	assert.Empty(t, it.PubDate)

	assert.Equal(t, "Placed on the 10-day IL.", items[1].Content)
	assert.Empty(t, items[1].Published)
}

func TestDecodeBareChannel(t *testing.T) {
	items, err := Decode(strings.NewReader(bareChannelFixture))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, PlainValue("Braves sign free agent"), items[0].Title)
}

func TestDecodeRejectsUnknownDocuments(t *testing.T) {
	for name, doc := range map[string]string{
		"html": "<html><body>not a feed</body></html>",
		"text": "not xml at all",
		"json": `{"version": "https://jsonfeed.org/version/1", "items": []}`,
	} {
		_, err := Decode(strings.NewReader(doc))
		var parseErr *FeedParseError
		assert.True(t, errors.As(err, &parseErr), "%s: got %v", name, err)
	}
}

func TestNormalizeRSSItem(t *testing.T) {
	items, err := Decode(strings.NewReader(rssFixture))
	require.NoError(t, err)

	a, err := Normalize(items[0])
	require.NoError(t, err)
	assert.Equal(t, "Yankees acquire reliever in trade", a.Title)
	assert.Equal(t, "The Yankees made a deal.", a.Description)
	assert.Equal(t, "MLB.com", a.FeedSource)
	assert.True(t, a.Published.Equal(time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)))
}

func TestNormalizeSourceFallsBackToHost(t *testing.T) {
	items, err := Decode(strings.NewReader(rssFixture))
	require.NoError(t, err)

	a, err := Normalize(items[1])
	require.NoError(t, err)
	assert.Equal(t, "espn.com", a.FeedSource)
	assert.Empty(t, a.Description)
}

func TestNormalizeAtomEntries(t *testing.T) {
	items, err := Decode(strings.NewReader(atomFixture))
	require.NoError(t, err)

	a, err := Normalize(items[0])
	require.NoError(t, err)
	assert.True(t, a.Published.Equal(time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)), "published wins over updated")
	assert.Equal(t, "https://www.cubs.com/news/recall", a.Link)
	assert.Equal(t, "Beat Writer", a.FeedSource)

	b, err := Normalize(items[1])
	require.NoError(t, err)
	assert.True(t, b.Published.Equal(time.Date(2025, 7, 13, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Placed on the 10-day IL.", b.Description)
	assert.Equal(t, "example.com", b.FeedSource)
}

func TestNormalizeTimestampPrecedence(t *testing.T) {
	a, err := Normalize(RawItem{
		Title:     PlainValue("x"),
		PubDate:   "not a date",
		Published: "2025-07-01T10:00:00Z",
		Updated:   "2025-07-02T10:00:00Z",
	})
	require.NoError(t, err)
	assert.True(t, a.Published.Equal(time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)))
}

func TestNormalizeDescriptionPrecedence(t *testing.T) {
	a, err := Normalize(RawItem{
		Title:   PlainValue("x"),
		Updated: "2025-07-02T10:00:00Z",
		Summary: "summary",
		Content: "content",
	})
	require.NoError(t, err)
	assert.Equal(t, "summary", a.Description)
}

func TestNormalizeDropsUnusableItems(t *testing.T) {
	tests := map[string]RawItem{
		"no timestamp":        {Title: PlainValue("Trade news")},
		"garbage timestamp":   {Title: PlainValue("Trade news"), PubDate: "yesterday-ish"},
		"blank title":         {Title: PlainValue("   "), PubDate: "2025-07-01T10:00:00Z"},
		"missing title":       {PubDate: "2025-07-01T10:00:00Z"},
		"href is not a title": {Title: HrefValue("https://x"), PubDate: "2025-07-01T10:00:00Z"},
	}
	for name, raw := range tests {
		_, err := Normalize(raw)
		var itemErr *ItemParseError
		assert.True(t, errors.As(err, &itemErr), "%s: got %v", name, err)
	}
}

func TestNormalizeUnknownSource(t *testing.T) {
	a, err := Normalize(RawItem{Title: PlainValue("x"), PubDate: "2025-07-01T10:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, UnknownSource, a.FeedSource)
	assert.Empty(t, a.Link)
}

func TestNormalizeLinkFromTextNode(t *testing.T) {
	a, err := Normalize(RawItem{
		Title:   PlainValue("x"),
		Link:    TextValue("https://www.mlb.com/news/2"),
		PubDate: "2025-07-01T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.mlb.com/news/2", a.Link)
	assert.Equal(t, "mlb.com", a.FeedSource)
}

func TestValueUnwrap(t *testing.T) {
	s, ok := PlainValue("").Unwrap()
	assert.False(t, ok)
	assert.Empty(t, s)

	s, ok = HrefValue("https://x").Unwrap()
	assert.True(t, ok)
	assert.Equal(t, "https://x", s)
}
