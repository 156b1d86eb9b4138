package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_CustomIDRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action Action
		want   string
	}{
		{action: Action{Command: "box", Kind: ActionEditText}, want: "box:edittext"},
		{action: Action{Command: "box", Kind: ActionSubmitText}, want: "box:modal:text"},
		{action: Action{Command: "box", Kind: ActionOpenExpressionPicker}, want: "box:expression"},
		{action: Action{Command: "box", Kind: ActionSelectExpression, MessageID: "1234"}, want: "box:select:expression:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.action.CustomID())

			got, err := ParseAction(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.action, got)
			assert.Equal(t, "box", CommandOf(tt.want))
		})
	}
}

func TestParseAction_Errors(t *testing.T) {
	t.Parallel()

	for _, id := range []string{
		"",
		"box",
		":edittext",
		"box:unknown",
		"box:select:expression",
		"box:select:expression:",
		"box:select:other:123",
	} {
		_, err := ParseAction(id)
		require.ErrorIs(t, err, ErrUnknownCustomID, "custom id %q", id)
	}
}

func TestActionKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", ActionUnknown.String())
	assert.Equal(t, "unknown", ActionKind(99).String())
}
