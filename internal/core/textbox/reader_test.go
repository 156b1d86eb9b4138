package textbox

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func renderURLs(t *testing.T, state DialogueState, limit int) []string {
	t.Helper()
	return NewReconciler(newTestEncoder(), limit).Render(state).URLs()
}

func TestResolveSurface(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		embeds      []string
		attachments []string
		want        Surface
	}{
		{
			name:        "embeds preferred",
			embeds:      []string{"e1", "e2"},
			attachments: []string{"a1"},
			want:        Surface{Kind: SurfaceEmbeds, URLs: []string{"e1", "e2"}},
		},
		{
			name:        "legacy attachments",
			attachments: []string{"a1", "a2"},
			want:        Surface{Kind: SurfaceAttachments, URLs: []string{"a1", "a2"}},
		},
		{
			name:        "embeds without images fall back",
			embeds:      []string{"", ""},
			attachments: []string{"a1"},
			want:        Surface{Kind: SurfaceAttachments, URLs: []string{"a1"}},
		},
		{
			name: "nothing",
			want: Surface{Kind: SurfaceNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ResolveSurface(tt.embeds, tt.attachments))
		})
	}
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	r := NewReader(Fallback{}, zerolog.Nop())
	state := DialogueState{
		CharacterID: "deltarune-susie",
		Expression:  "smile",
		Text:        "you know what? " + "this is going to take more than one box to say, so buckle up and listen closely.",
	}
	urls := renderURLs(t, state, 30)

	got := r.Read(EmbedSurface(urls))

	assert.Equal(t, state, got.State)
	assert.Equal(t, SurfaceEmbeds, got.Surface)
	assert.Equal(t, urls, got.Panels.URLs())
	assert.Greater(t, len(got.Panels), 1)
}

func TestReader_LegacyMatchesEmbeds(t *testing.T) {
	t.Parallel()

	r := NewReader(DefaultFallback(), zerolog.Nop())
	urls := renderURLs(t, DialogueState{CharacterID: "undertale-sans", Expression: "wink", Text: "heya. kid"}, 69)

	embeds := r.Read(ResolveSurface(urls, nil))
	legacy := r.Read(ResolveSurface(nil, urls))

	assert.Equal(t, SurfaceEmbeds, embeds.Surface)
	assert.Equal(t, SurfaceAttachments, legacy.Surface)
	assert.Equal(t, embeds.State, legacy.State)
	assert.Equal(t, embeds.Panels, legacy.Panels)
}

func TestReader_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fallback Fallback
		surface  Surface
		want     DialogueState
	}{
		{
			name:    "no panels",
			surface: Surface{Kind: SurfaceNone},
			want:    DialogueState{CharacterID: "undertale-sans", Expression: "default"},
		},
		{
			name:    "undecodable url",
			surface: EmbedSurface([]string{"://%zz"}),
			want:    DialogueState{CharacterID: "undertale-sans", Expression: "default"},
		},
		{
			name:    "missing expression",
			surface: AttachmentSurface([]string{"https://host/x.png?character=deltarune-ralsei&text=hi"}),
			want:    DialogueState{CharacterID: "deltarune-ralsei", Expression: "default", Text: "hi"},
		},
		{
			name:     "configured fallback",
			fallback: Fallback{CharacterID: "undertale-toriel", Expression: "happy"},
			surface:  EmbedSurface([]string{"https://cdn.example.com/image.png"}),
			want:     DialogueState{CharacterID: "undertale-toriel", Expression: "happy"},
		},
		{
			name: "panels without text are skipped",
			surface: EmbedSurface([]string{
				"https://host/x.png?character=c&expression=e&text=one",
				"https://host/x.png?character=c&expression=e",
				"https://host/x.png?character=c&expression=e&text=three",
			}),
			want: DialogueState{CharacterID: "c", Expression: "e", Text: "one three"},
		},
		{
			name: "character comes from first panel",
			surface: EmbedSurface([]string{
				"https://host/x.png?character=first&expression=a&text=x",
				"https://host/x.png?character=second&expression=b&text=y",
			}),
			want: DialogueState{CharacterID: "first", Expression: "a", Text: "x y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewReader(tt.fallback, zerolog.Nop()).Read(tt.surface)
			assert.Equal(t, tt.want, got.State)
			assert.Len(t, got.Panels, len(tt.surface.URLs))
		})
	}
}
