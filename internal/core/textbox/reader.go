package textbox

import (
	"github.com/rs/zerolog"
)

// SurfaceKind identifies how a rendered message exposes its panels.
type SurfaceKind int

const (
	// SurfaceNone means the message carries no panels.
	SurfaceNone SurfaceKind = iota
	// SurfaceEmbeds is the current format: one embed image per panel.
	SurfaceEmbeds
	// SurfaceAttachments is the legacy format: one attachment per panel.
	SurfaceAttachments
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceEmbeds:
		return "embeds"
	case SurfaceAttachments:
		return "attachments"
	default:
		return "none"
	}
}

// Surface is the resolved panel surface of a rendered message.
type Surface struct {
	Kind SurfaceKind
	URLs []string
}

// EmbedSurface returns a Surface for embed image URLs.
func EmbedSurface(urls []string) Surface {
	return Surface{Kind: SurfaceEmbeds, URLs: urls}
}

// AttachmentSurface returns a Surface for legacy attachment URLs.
func AttachmentSurface(urls []string) Surface {
	return Surface{Kind: SurfaceAttachments, URLs: urls}
}

// ResolveSurface picks the surface to read. Embeds win whenever any exist;
// attachments are only consulted for messages rendered in the legacy format.
func ResolveSurface(embedURLs, attachmentURLs []string) Surface {
	if embeds := nonEmpty(embedURLs); len(embeds) > 0 {
		return EmbedSurface(embeds)
	}
	if attachments := nonEmpty(attachmentURLs); len(attachments) > 0 {
		return AttachmentSurface(attachments)
	}
	return Surface{Kind: SurfaceNone}
}

func nonEmpty(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Fallback holds the state used when a message yields nothing readable.
type Fallback struct {
	CharacterID string
	Expression  string
}

// DefaultFallback returns the stock fallback state.
func DefaultFallback() Fallback {
	return Fallback{CharacterID: DefaultCharacter, Expression: DefaultExpression}
}

// ReadResult is the state recovered from a rendered message.
type ReadResult struct {
	State   DialogueState
	Panels  PanelSet
	Surface SurfaceKind
}

// Reader recovers dialogue state from rendered messages.
type Reader struct {
	fallback Fallback
	log      zerolog.Logger
}

// NewReader creates a Reader. Zero value fields in fallback use the defaults.
func NewReader(fallback Fallback, log zerolog.Logger) *Reader {
	def := DefaultFallback()
	if fallback.CharacterID == "" {
		fallback.CharacterID = def.CharacterID
	}
	if fallback.Expression == "" {
		fallback.Expression = def.Expression
	}
	return &Reader{fallback: fallback, log: log}
}

// Read decodes a surface into dialogue state. Character and expression come
// from the first panel; text is every panel's segment joined by a space.
// Undecodable panels fall back to defaults rather than failing.
func (r *Reader) Read(s Surface) ReadResult {
	res := ReadResult{
		State: DialogueState{
			CharacterID: r.fallback.CharacterID,
			Expression:  r.fallback.Expression,
		},
		Panels:  PanelsFromURLs(s.URLs),
		Surface: s.Kind,
	}

	if len(s.URLs) == 0 {
		return res
	}

	segments := make([]string, 0, len(s.URLs))
	for i, u := range s.URLs {
		d := Decode(u)
		if d.Err != nil {
			r.log.Debug().Err(d.Err).Int("panel", i).Str("surface", s.Kind.String()).Msg("panel decode failed")
		}

		if i == 0 {
			res.State.CharacterID = d.Character.Or(r.fallback.CharacterID)
			res.State.Expression = d.Expression.Or(r.fallback.Expression)
		}

		if d.Text.OK {
			segments = append(segments, d.Text.Value)
		}
	}

	res.State.Text = Join(segments)
	return res
}
