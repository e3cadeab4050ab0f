package models

import (
	"fmt"
	"strings"
)

// SourceType tags a feed with the kind of news it carries.
type SourceType string

const (
	SourceTrade       SourceType = "Trade"
	SourceRoster      SourceType = "Roster"
	SourceTransaction SourceType = "Transaction"
	SourceSigning     SourceType = "Signing"
	SourceAcquisition SourceType = "Acquisition"
	SourceGeneral     SourceType = "General"

	// SourceAll selects every source.
	SourceAll SourceType = "All"
)

// SourceSpec is one configured feed endpoint.
type SourceSpec struct {
	Name     string
	Type     SourceType
	Endpoint string
}

const googleNewsSearch = "https://news.google.com/rss/search?hl=en-US&gl=US&ceid=US:en&q="

// Sources is the fixed source table, one entry per type.
var Sources = []SourceSpec{
	{Name: "MLB Trade News", Type: SourceTrade, Endpoint: googleNewsSearch + "MLB+trade"},
	{Name: "MLB Roster Moves", Type: SourceRoster, Endpoint: googleNewsSearch + "MLB+roster+move"},
	{Name: "MLB Transactions", Type: SourceTransaction, Endpoint: googleNewsSearch + "MLB+transactions"},
	{Name: "MLB Signings", Type: SourceSigning, Endpoint: googleNewsSearch + "MLB+signs"},
	{Name: "MLB Acquisitions", Type: SourceAcquisition, Endpoint: googleNewsSearch + "MLB+acquires"},
	{Name: "MLB News", Type: SourceGeneral, Endpoint: googleNewsSearch + "MLB"},
}

// ParseSourceType accepts a type name in any case.
func ParseSourceType(s string) (SourceType, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(SourceAll)) {
		return SourceAll, nil
	}
	for _, src := range Sources {
		if strings.EqualFold(string(src.Type), s) {
			return src.Type, nil
		}
	}
	return "", fmt.Errorf("unknown source type %q", s)
}

// SelectSources filters the built-in source table to the requested types.
func SelectSources(types []SourceType) []SourceSpec {
	return FilterSources(Sources, types)
}

// FilterSources keeps the entries of table whose type was requested, in
// table order. An empty request or one containing SourceAll keeps all.
func FilterSources(table []SourceSpec, types []SourceType) []SourceSpec {
	if len(types) == 0 {
		return append([]SourceSpec(nil), table...)
	}
	want := make(map[SourceType]bool, len(types))
	for _, t := range types {
		if t == SourceAll {
			return append([]SourceSpec(nil), table...)
		}
		want[t] = true
	}

	var selected []SourceSpec
	for _, src := range table {
		if want[src.Type] {
			selected = append(selected, src)
		}
	}
	return selected
}
