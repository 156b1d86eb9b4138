// Package textbox turns dialogue into rendered text box panels and back.
//
// A dialogue box has no backing storage. Every panel URL carries the full
// state for its segment (character, expression, box style and text), so the
// rendered message is the only record of a session. The package provides the
// pieces needed to move between the two representations:
//
//   - Chunk splits dialogue into bounded segments.
//   - Encoder and Decode map a segment's state to and from a renderer URL.
//   - Read recovers a DialogueState from the panels of a rendered message.
//   - Reconciler applies the two supported edits to an existing panel set.
package textbox

// BoxStyle is the rendering theme requested from the image renderer.
type BoxStyle string

const (
	BoxUndertale BoxStyle = "undertale"
	BoxDeltarune BoxStyle = "deltarune"
)

// IsValid reports whether b is one of the two styles the renderer accepts.
func (b BoxStyle) IsValid() bool {
	switch b {
	case BoxUndertale, BoxDeltarune:
		return true
	default:
		return false
	}
}

const (
	// DefaultCharacter is used when a panel carries no readable character.
	DefaultCharacter = "undertale-sans"
	// DefaultExpression is used when no expression is given or recoverable.
	DefaultExpression = "default"
)

// DialogueState is the logical session value for one dialogue box. It only
// lives for the duration of a single interaction.
type DialogueState struct {
	CharacterID string `json:"character"`
	Expression  string `json:"expression"`
	Text        string `json:"text"`
}

// Panel is one rendered segment of a dialogue box.
type Panel struct {
	ImageURL string `json:"url"`
}

// PanelSet is an ordered sequence of panels in reading order.
type PanelSet []Panel

// URLs returns the image URLs of the set in order.
func (ps PanelSet) URLs() []string {
	urls := make([]string, len(ps))
	for i, p := range ps {
		urls[i] = p.ImageURL
	}
	return urls
}

// PanelsFromURLs wraps raw image URLs as a PanelSet.
func PanelsFromURLs(urls []string) PanelSet {
	ps := make(PanelSet, len(urls))
	for i, u := range urls {
		ps[i] = Panel{ImageURL: u}
	}
	return ps
}
