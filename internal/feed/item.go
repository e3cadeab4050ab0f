// Package feed decodes RSS 2.0, Atom and bare-channel documents into raw
// items and normalizes those items into articles.
package feed

// ValueKind says how a feed carried a field.
type ValueKind uint8

const (
	Absent   ValueKind = iota
	Plain              // element character data
	TextNode           // text construct, e.g. Atom <title type="html">
	HrefNode           // href attribute, e.g. Atom <link href="..."/>
)

// Value is a field that may arrive as a bare string or wrapped in a
// structured node. Callers unwrap it explicitly.
type Value struct {
	Kind ValueKind
	S    string
}

func PlainValue(s string) Value { return wrap(Plain, s) }
func TextValue(s string) Value  { return wrap(TextNode, s) }
func HrefValue(s string) Value  { return wrap(HrefNode, s) }

func wrap(k ValueKind, s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{Kind: k, S: s}
}

// Unwrap returns the payload and whether one was present.
func (v Value) Unwrap() (string, bool) {
	return v.S, v.Kind != Absent
}

// RawItem is one feed entry with its dialect-specific fields kept apart.
// RSS fills PubDate and Description; Atom fills Published, Updated, Summary
// and Content.
type RawItem struct {
	Title Value
	Link  Value

	PubDate   string
	Published string
	Updated   string

	Description string
	Summary     string
	Content     string

	Source Value
	Author string
}
