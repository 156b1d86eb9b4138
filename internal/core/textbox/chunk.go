package textbox

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkLimit is the longest segment, in characters, that fits in
	// a single text box.
	DefaultChunkLimit = 69

	// Placeholder stands in for empty dialogue so a box always has a panel.
	Placeholder = "..."
)

// Chunk splits text into an ordered, non-empty list of segments of at most
// limit characters using greedy word wrap. Words longer than limit are hard
// split into limit sized slices; the remainder of such a word starts the next
// segment. A limit below 1 falls back to DefaultChunkLimit.
//
// Whitespace between words is normalized to a single space once wrapping is
// needed. Text that already fits is returned unchanged.
func Chunk(text string, limit int) []string {
	if limit < 1 {
		limit = DefaultChunkLimit
	}

	if text == "" {
		return []string{Placeholder}
	}

	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)

	flush := func() {
		seg := strings.TrimRight(cur.String(), " \t\r\n")
		if seg != "" {
			chunks = append(chunks, seg)
		}
		cur.Reset()
		curLen = 0
	}

	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)

		need := wordLen
		if curLen > 0 {
			need += curLen + 1
		}

		if need <= limit {
			if curLen > 0 {
				cur.WriteByte(' ')
				curLen++
			}
			cur.WriteString(word)
			curLen += wordLen
			continue
		}

		flush()

		if wordLen <= limit {
			cur.WriteString(word)
			curLen = wordLen
			continue
		}

		runes := []rune(word)
		for len(runes) > limit {
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		cur.WriteString(string(runes))
		curLen = len(runes)
	}

	flush()

	if len(chunks) == 0 {
		return []string{Placeholder}
	}

	return chunks
}

// Join approximates the original dialogue from its segments. Exact
// whitespace is not recoverable.
func Join(segments []string) string {
	return strings.Join(segments, " ")
}
