package feed

import "fmt"

// FeedParseError means a document could not be recognised or decoded.
type FeedParseError struct {
	Err error
}

func (e *FeedParseError) Error() string {
	return fmt.Sprintf("parsing feed: %v", e.Err)
}

func (e *FeedParseError) Unwrap() error { return e.Err }

// ItemParseError means a single entry lacks a usable title or timestamp.
type ItemParseError struct {
	Reason string
}

func (e *ItemParseError) Error() string {
	return "skipping item: " + e.Reason
}
