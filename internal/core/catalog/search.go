package catalog

import (
	"strings"
)

// MaxChoices is the most autocomplete choices the chat platform accepts.
const MaxChoices = 25

// Choice is an autocomplete suggestion.
type Choice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SearchCharacters matches query against display names (case-insensitive) and
// ids. Results are in id order and capped at MaxChoices.
func (s *Snapshot) SearchCharacters(query string) []Choice {
	q := strings.ToLower(query)

	choices := make([]Choice, 0, MaxChoices)
	for _, id := range s.IDs() {
		c := s.chars[id]
		if !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(id, q) {
			continue
		}

		choices = append(choices, Choice{Name: c.Name + " (" + UniverseLabel(c.Universe) + ")", Value: id})
		if len(choices) >= MaxChoices {
			break
		}
	}
	return choices
}

// SearchExpressions matches query against the expression keys and names of a
// character. Unknown characters have no expressions.
func (s *Snapshot) SearchExpressions(characterID, query string) []Choice {
	c, ok := s.Lookup(characterID)
	if !ok {
		return []Choice{}
	}

	q := strings.ToLower(query)

	choices := make([]Choice, 0, min(len(c.Expressions), MaxChoices))
	for _, e := range c.Expressions {
		if !strings.Contains(e.Key, q) && !strings.Contains(strings.ToLower(e.Name), q) {
			continue
		}

		choices = append(choices, Choice{Name: e.Label(), Value: e.Key})
		if len(choices) >= MaxChoices {
			break
		}
	}
	return choices
}

// UniverseLabel capitalizes a universe id for display.
func UniverseLabel(universe string) string {
	if universe == "" {
		return "Unknown"
	}
	return strings.ToUpper(universe[:1]) + universe[1:]
}
