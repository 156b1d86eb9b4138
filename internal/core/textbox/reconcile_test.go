package textbox

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconciler_Render(t *testing.T) {
	t.Parallel()

	rec := NewReconciler(newTestEncoder(), 0)

	panels := rec.Render(DialogueState{CharacterID: "deltarune-susie", Expression: "smile"})
	require.Len(t, panels, 1)

	d := Decode(panels[0].ImageURL)
	assert.Equal(t, "...", d.Text.Value)
	assert.Equal(t, string(BoxDeltarune), d.Box.Value)
}

func TestReconciler_ReplaceText_IndependentOfPanelCount(t *testing.T) {
	t.Parallel()

	rec := NewReconciler(newTestEncoder(), DefaultChunkLimit)
	base := DialogueState{CharacterID: "undertale-sans", Expression: "wink"}

	onePanel := rec.Render(DialogueState{CharacterID: base.CharacterID, Expression: base.Expression, Text: "short"})
	fivePanels := rec.Render(DialogueState{CharacterID: base.CharacterID, Expression: base.Expression, Text: strings.Repeat("filler ", 45)})
	require.Len(t, onePanel, 1)
	require.Len(t, fivePanels, 5)

	reader := NewReader(DefaultFallback(), zerolog.Nop())
	fromOne := reader.Read(EmbedSurface(onePanel.URLs())).State
	fromFive := reader.Read(EmbedSurface(fivePanels.URLs())).State

	text := strings.Repeat("0123456789 ", 27) + "abc"
	require.Len(t, text, 300)

	stateA, panelsA := rec.ReplaceText(fromOne, text)
	stateB, panelsB := rec.ReplaceText(fromFive, text)

	assert.Equal(t, panelsA, panelsB)
	assert.Equal(t, stateA, stateB)
	assert.Equal(t, text, stateA.Text)
	assert.Equal(t, "wink", stateA.Expression)
}

func TestReconciler_ReplaceExpression(t *testing.T) {
	t.Parallel()

	rec := NewReconciler(newTestEncoder(), 25)
	state := DialogueState{
		CharacterID: "undertale-papyrus",
		Expression:  "default",
		Text:        "NYEH HEH HEH! THE GREAT PAPYRUS HAS A PUZZLE FOR YOU, HUMAN!",
	}
	before := rec.Render(state)
	require.Len(t, before, 3)

	newState, after := rec.ReplaceExpression(state, before, "surprised")

	assert.Equal(t, "surprised", newState.Expression)
	assert.Equal(t, state.Text, newState.Text)
	require.Len(t, after, 3)

	for i := range after {
		old, cur := Decode(before[i].ImageURL), Decode(after[i].ImageURL)
		assert.Equal(t, "surprised", cur.Expression.Value)
		assert.Equal(t, old.Text, cur.Text)
		assert.Equal(t, old.Character, cur.Character)
		assert.Equal(t, old.Box, cur.Box)
		assert.Contains(t, after[i].ImageURL, "expression=surprised")
	}
}

func TestReconciler_ReplaceExpression_KeepsSegmentBoundaries(t *testing.T) {
	t.Parallel()

	// Panels rendered with a wider limit must not be re-chunked.
	wide := NewReconciler(newTestEncoder(), 40).Render(DialogueState{
		CharacterID: "undertale-sans",
		Expression:  "default",
		Text:        strings.Repeat("bone ", 20),
	})

	_, got := NewReconciler(newTestEncoder(), 10).ReplaceExpression(
		DialogueState{CharacterID: "undertale-sans"}, wide, "closed_eyes")

	require.Len(t, got, len(wide))
	for i := range got {
		assert.Equal(t, Decode(wide[i].ImageURL).Text, Decode(got[i].ImageURL).Text)
	}
}

func TestReconciler_ReplaceExpression_Degraded(t *testing.T) {
	t.Parallel()

	rec := NewReconciler(newTestEncoder(), DefaultChunkLimit)
	state := DialogueState{CharacterID: "deltarune-susie", Expression: "default"}

	t.Run("undecodable panel takes state character", func(t *testing.T) {
		t.Parallel()

		_, got := rec.ReplaceExpression(state, PanelsFromURLs([]string{"https://cdn.example.com/legacy.png"}), "smile")
		require.Len(t, got, 1)

		d := Decode(got[0].ImageURL)
		assert.Equal(t, "deltarune-susie", d.Character.Value)
		assert.Equal(t, "smile", d.Expression.Value)
		assert.Equal(t, string(BoxDeltarune), d.Box.Value)
	})

	t.Run("empty set renders state", func(t *testing.T) {
		t.Parallel()

		s := state
		s.Text = "hey"
		newState, got := rec.ReplaceExpression(s, nil, "smile")
		require.Len(t, got, 1)
		assert.Equal(t, "smile", newState.Expression)
		assert.Equal(t, "hey", Decode(got[0].ImageURL).Text.Value)
	})
}
