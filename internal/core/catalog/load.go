package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// rawCharacter mirrors one entry of the catalog file as written by the
// scraper. Fields the bot does not use are ignored.
type rawCharacter struct {
	Name         string          `json:"name"`
	Universe     string          `json:"universe"`
	ShownTextbox json.RawMessage `json:"shown_textbox"`
	Sprites      struct {
		Textbox json.RawMessage `json:"textbox"`
	} `json:"sprites"`
}

type rawSprite struct {
	Name string `json:"name"`
}

// ParseStats reports what Parse kept and dropped.
type ParseStats struct {
	Total   int
	Hidden  int
	Invalid int
}

// Parse decodes a catalog file. Entries with shown_textbox set to false are
// excluded and entries that fail to decode are skipped and counted.
func Parse(data []byte) (*Snapshot, ParseStats, error) {
	var stats ParseStats

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, stats, fmt.Errorf("parse catalog: %w", err)
	}

	stats.Total = len(entries)
	chars := make([]Character, 0, len(entries))
	for id, raw := range entries {
		var rc rawCharacter
		if err := json.Unmarshal(raw, &rc); err != nil {
			stats.Invalid++
			continue
		}

		if isFalse(rc.ShownTextbox) {
			stats.Hidden++
			continue
		}

		chars = append(chars, Character{
			ID:          id,
			Name:        rc.Name,
			Universe:    rc.Universe,
			Expressions: parseSprites(rc.Sprites.Textbox),
		})
	}

	return NewSnapshot(chars), stats, nil
}

// LoadFile reads and parses the catalog file at path.
func LoadFile(path string) (*Snapshot, ParseStats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// HasTextboxSprites reports whether a raw catalog entry has at least one text
// box sprite. Entries without sprites cannot be rendered.
func HasTextboxSprites(raw json.RawMessage) bool {
	var rc rawCharacter
	if err := json.Unmarshal(raw, &rc); err != nil {
		return false
	}
	return len(parseSprites(rc.Sprites.Textbox)) > 0
}

// parseSprites accepts the textbox sprite table. Empty tables may be encoded
// as a JSON array by the upstream API, which yields no expressions.
func parseSprites(raw json.RawMessage) []Expression {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	var sprites map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sprites); err != nil {
		return nil
	}

	exprs := make([]Expression, 0, len(sprites))
	for key, v := range sprites {
		var s rawSprite
		_ = json.Unmarshal(v, &s) // a sprite without a readable name still counts
		exprs = append(exprs, Expression{Key: key, Name: s.Name})
	}
	return exprs
}

func isFalse(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "false", "0", `"0"`, `"false"`:
		return true
	default:
		return false
	}
}
