package models

import (
	"fmt"
	"strings"
)

// AllTeams is the wildcard team selector.
const AllTeams = "All"

// Teams lists the thirty clubs a search can be narrowed to. Matching is a
// substring test against the nickname, so the nickname is what's stored.
var Teams = []string{
	"Angels", "Astros", "Athletics", "Blue Jays", "Braves",
	"Brewers", "Cardinals", "Cubs", "Diamondbacks", "Dodgers",
	"Giants", "Guardians", "Mariners", "Marlins", "Mets",
	"Nationals", "Orioles", "Padres", "Phillies", "Pirates",
	"Rangers", "Rays", "Red Sox", "Reds", "Rockies",
	"Royals", "Tigers", "Twins", "White Sox", "Yankees",
}

// ParseTeam returns the canonical spelling of name, or an error if it is
// neither a known team nor the wildcard.
func ParseTeam(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, AllTeams) {
		return AllTeams, nil
	}
	for _, t := range Teams {
		if strings.EqualFold(t, name) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown team %q", name)
}
