package textbox

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/textbox-bot/textbox/internal/core/catalog"
)

// DefaultRendererURL is the text box image generator.
const DefaultRendererURL = "https://www.demirramon.com/gen/undertale_text_box.png"

// Query parameter names understood by the renderer.
const (
	ParamText       = "text"
	ParamCharacter  = "character"
	ParamExpression = "expression"
	ParamBox        = "box"
)

// ErrMalformedURL is reported by Decode when a panel URL cannot be parsed.
var ErrMalformedURL = errors.New("malformed panel url")

// CharacterLookup resolves character records. *catalog.Catalog and
// *catalog.Snapshot both satisfy it.
type CharacterLookup interface {
	Lookup(id string) (catalog.Character, bool)
}

// Encoder builds renderer URLs for panel state.
type Encoder struct {
	baseURL string
	chars   CharacterLookup
	log     zerolog.Logger
}

// NewEncoder creates an Encoder. An empty baseURL uses DefaultRendererURL and
// a nil lookup classifies every character as BoxUndertale.
func NewEncoder(baseURL string, chars CharacterLookup, log zerolog.Logger) *Encoder {
	if baseURL == "" {
		baseURL = DefaultRendererURL
	}
	return &Encoder{baseURL: baseURL, chars: chars, log: log}
}

// Style returns the box style for a character. Unknown characters render in
// the undertale style.
func (e *Encoder) Style(characterID string) BoxStyle {
	if e.chars == nil {
		return BoxUndertale
	}
	char, ok := e.chars.Lookup(characterID)
	if ok && char.Universe == catalog.UniverseDeltarune {
		return BoxDeltarune
	}
	return BoxUndertale
}

// Encode returns the renderer URL for one segment of dialogue.
func (e *Encoder) Encode(characterID, expression, text string) string {
	box := e.Style(characterID)

	var q strings.Builder
	writeParam(&q, ParamCharacter, characterID)
	writeParam(&q, ParamExpression, expression)
	writeParam(&q, ParamText, text)
	writeParam(&q, ParamBox, string(box))

	sep := "?"
	if strings.Contains(e.baseURL, "?") {
		sep = "&"
	}

	u := e.baseURL + sep + q.String()
	e.log.Debug().Str("url", u).Msg("generated panel url")
	return u
}

func writeParam(b *strings.Builder, key, value string) {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}

// Field is a single decoded query parameter. OK is false when the parameter
// was absent or empty.
type Field struct {
	Value string
	OK    bool
}

// Or returns the field value, or def when the field was not decoded.
func (f Field) Or(def string) string {
	if !f.OK {
		return def
	}
	return f.Value
}

// Decoded is the state recovered from a single panel URL. Box is a rendering
// hint only and is never used to classify a character.
type Decoded struct {
	Character  Field
	Expression Field
	Text       Field
	Box        Field

	// Err is non-nil when the URL was malformed. Fields that could still be
	// read are populated.
	Err error
}

// Decode reads panel state back out of a renderer URL. It never fails as a
// whole; each field reports whether it was present.
func Decode(rawURL string) Decoded {
	var d Decoded

	u, err := url.Parse(rawURL)
	if err != nil {
		d.Err = fmt.Errorf("%w: %w", ErrMalformedURL, err)
		return d
	}

	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		d.Err = fmt.Errorf("%w: %w", ErrMalformedURL, err)
	}

	d.Character = field(values, ParamCharacter)
	d.Expression = field(values, ParamExpression)
	d.Text = field(values, ParamText)
	d.Box = field(values, ParamBox)
	if d.Box.OK && !BoxStyle(d.Box.Value).IsValid() {
		d.Box = Field{}
	}

	return d
}

func field(values url.Values, key string) Field {
	v := values.Get(key)
	if v == "" {
		return Field{}
	}
	return Field{Value: v, OK: true}
}
