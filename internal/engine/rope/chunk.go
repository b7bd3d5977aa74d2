package rope

// Chunk size bounds for leaf storage.
const (
	// MinChunkSize is the size below which adjacent chunks are merged on concat.
	MinChunkSize = 128

	// MaxChunkSize is the largest chunk produced by splitting.
	MaxChunkSize = 256

	// TargetChunkSize is the preferred size when cutting long strings.
	TargetChunkSize = (MinChunkSize + MaxChunkSize) / 2
)

// chunk is an immutable piece of text with precomputed metrics.
type chunk struct {
	text    string
	summary Summary
}

func newChunk(s string) chunk {
	return chunk{text: s, summary: summarize(s)}
}

func (c chunk) len() int {
	return len(c.text)
}

// split cuts the chunk at byte offset, which must be on a UTF-8 boundary.
func (c chunk) split(offset int) (chunk, chunk) {
	if offset <= 0 {
		return chunk{}, c
	}
	if offset >= len(c.text) {
		return c, chunk{}
	}
	return newChunk(c.text[:offset]), newChunk(c.text[offset:])
}

// splitIntoChunks cuts s into chunks of at most MaxChunkSize bytes.
func splitIntoChunks(s string) []chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= MaxChunkSize {
		return []chunk{newChunk(s)}
	}

	chunks := make([]chunk, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := cutPoint(s, TargetChunkSize)
		chunks = append(chunks, newChunk(s[:cut]))
		s = s[cut:]
	}
	if len(s) > 0 {
		chunks = append(chunks, newChunk(s))
	}
	return chunks
}

// cutPoint finds a UTF-8 boundary near target, preferring the byte after a
// newline within a small window.
func cutPoint(s string, target int) int {
	window := MinChunkSize / 4
	lo, hi := max(target-window, 1), min(target+window, len(s))

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}
	return pos
}

// isUTF8Start reports whether b begins a UTF-8 sequence.
func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
