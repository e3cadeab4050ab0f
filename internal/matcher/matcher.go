// Package matcher decides whether an article is relevant to the search.
//
// An article must pass two stages. The entity stage checks it mentions a
// configured player, the configured team, or (with neither) passes
// unconditionally. The topical stage then requires at least one
// transaction keyword. Both are plain case-insensitive substring tests.
package matcher

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/thedittmer/mlb-wire/internal/models"
)

// GeneralReason is the reason recorded when no team or player narrows the search.
const GeneralReason = "General MLB news"

// Keywords is the transaction vocabulary for the topical stage.
var Keywords = []string{
	"trade", "deal", "acquire", "sign", "roster", "move", "transaction",
	"swap", "exchange", "claim", "designate", "option", "waive", "waived",
	"release", "placed on", "recalled", "sent to", "promoted", "called up",
	"optioned", "designated", "injured list", "IL", "DFA", "free agent",
	"contract", "extension", "agreement", "terms", "added", "removed",
	"assigned", "outrighted", "selected", "purchased", "transferred",
	"draft", "signing",
}

// Matcher is safe for concurrent use once built.
type Matcher struct {
	team    string
	players []string

	keywords []string
	topics   *ahocorasick.Matcher
}

// New builds a matcher for team (models.AllTeams or "" for any team) and
// players. Blank player names are ignored.
func New(team string, players []string) *Matcher {
	m := &Matcher{team: strings.TrimSpace(team)}
	if strings.EqualFold(m.team, models.AllTeams) {
		m.team = ""
	}
	for _, p := range players {
		if p = strings.TrimSpace(p); p != "" {
			m.players = append(m.players, p)
		}
	}

	m.keywords = make([]string, len(Keywords))
	for i, kw := range Keywords {
		m.keywords[i] = strings.ToLower(kw)
	}
	m.topics = ahocorasick.NewStringMatcher(m.keywords)
	return m
}

// Match runs both stages and returns the entity-stage reason on success.
func (m *Matcher) Match(a models.Article) (string, bool) {
	title := strings.ToLower(a.Title)
	desc := strings.ToLower(a.Description)

	reason, ok := m.entity(title, desc)
	if !ok {
		return "", false
	}
	if _, ok := m.topical(title, desc); !ok {
		return "", false
	}
	return reason, true
}

// Keyword returns the first transaction keyword found in the article,
// checking the title before the description.
func (m *Matcher) Keyword(a models.Article) (string, bool) {
	return m.topical(strings.ToLower(a.Title), strings.ToLower(a.Description))
}

func (m *Matcher) entity(title, desc string) (string, bool) {
	if len(m.players) > 0 {
		for _, p := range m.players {
			lp := strings.ToLower(p)
			if strings.Contains(title, lp) || strings.Contains(desc, lp) {
				return "Matches player: " + p, true
			}
		}
		return "", false
	}

	if m.team == "" {
		return GeneralReason, true
	}

	lt := strings.ToLower(m.team)
	if strings.Contains(title, lt) || strings.Contains(desc, lt) {
		return "Matches team: " + m.team, true
	}
	return "", false
}

func (m *Matcher) topical(title, desc string) (string, bool) {
	for _, text := range []string{title, desc} {
		if hits := m.topics.MatchThreadSafe([]byte(text)); len(hits) > 0 {
			return m.keywords[hits[0]], true
		}
	}
	return "", false
}
