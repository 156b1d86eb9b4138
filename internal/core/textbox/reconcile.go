package textbox

// Reconciler produces panel sets for new dialogue and for edits to existing
// dialogue. Only two edits exist: replacing the text and replacing the
// expression. Changing the character starts a new box instead.
type Reconciler struct {
	enc   *Encoder
	limit int
}

// NewReconciler creates a Reconciler that chunks text at limit characters.
func NewReconciler(enc *Encoder, limit int) *Reconciler {
	if limit < 1 {
		limit = DefaultChunkLimit
	}
	return &Reconciler{enc: enc, limit: limit}
}

// Render chunks the state's text and encodes every segment.
func (r *Reconciler) Render(state DialogueState) PanelSet {
	segments := Chunk(state.Text, r.limit)
	panels := make(PanelSet, len(segments))
	for i, seg := range segments {
		panels[i] = Panel{ImageURL: r.enc.Encode(state.CharacterID, state.Expression, seg)}
	}
	return panels
}

// ReplaceText keeps the character and expression of state and renders text
// from scratch. The previous panel count has no influence on the result.
func (r *Reconciler) ReplaceText(state DialogueState, text string) (DialogueState, PanelSet) {
	state.Text = text
	return state, r.Render(state)
}

// ReplaceExpression rewrites only the expression of every panel. Segment
// boundaries and panel count are preserved. Panels whose character cannot be
// decoded take the character from state.
func (r *Reconciler) ReplaceExpression(state DialogueState, panels PanelSet, expression string) (DialogueState, PanelSet) {
	state.Expression = expression

	if len(panels) == 0 {
		return state, r.Render(state)
	}

	out := make(PanelSet, len(panels))
	for i, p := range panels {
		d := Decode(p.ImageURL)
		char := d.Character.Or(state.CharacterID)
		out[i] = Panel{ImageURL: r.enc.Encode(char, expression, d.Text.Value)}
	}
	return state, out
}
