package models

import (
	"time"
)

// Article is a feed entry reduced to the fields the search cares about.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Published   time.Time `json:"published"`
	FeedSource  string    `json:"source"`
}

// MatchedArticle is an Article that passed both relevance stages.
type MatchedArticle struct {
	Article
	MatchReason string `json:"match_reason"`
}

// Query narrows a search run. The date window is resolved separately.
type Query struct {
	Team    string
	Players []string
	Types   []SourceType
	Verbose bool
}

// Stats are the aggregate counters of one run.
type Stats struct {
	SourcesAttempted  int      `json:"sources_attempted"`
	SourcesSuccessful int      `json:"sources_successful"`
	ItemsChecked      int      `json:"items_checked"`
	ItemsDropped      int      `json:"items_dropped"`
	ItemsMatched      int      `json:"items_matched"`
	UniqueArticles    int      `json:"unique_articles"`
	SourcesFailed     []string `json:"sources_failed,omitempty"`
}
