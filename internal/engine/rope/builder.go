package rope

import (
	"io"
	"strings"
)

// Builder accumulates text and builds a rope in one pass.
// The zero value is ready to use.
type Builder struct {
	leaves  []*node
	pending strings.Builder
}

// WriteString appends s.
func (b *Builder) WriteString(s string) (int, error) {
	b.pending.WriteString(s)
	if b.pending.Len() >= MaxChunkSize*MaxChunksPerLeaf*4 {
		b.flush()
	}
	return len(s), nil
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	return b.WriteString(string(p))
}

// flush packs complete text into leaves. A trailing partial UTF-8 sequence
// stays pending until more input arrives.
func (b *Builder) flush() {
	s := b.pending.String()
	cut := len(s)
	for cut > 0 && len(s)-cut < 4 && !isUTF8Start(s[cut-1]) {
		cut--
	}
	if cut > 0 && s[cut-1] >= 0xC0 {
		cut--
	}
	if cut == 0 {
		return
	}
	b.leaves = append(b.leaves, leavesFrom(s[:cut])...)
	b.pending.Reset()
	b.pending.WriteString(s[cut:])
}

// ReadFrom reads r to EOF.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// Build returns the rope and resets the builder.
func (b *Builder) Build() Rope {
	leaves := append(b.leaves, leavesFrom(b.pending.String())...)
	b.leaves = nil
	b.pending.Reset()
	return fromNodes(leaves)
}
