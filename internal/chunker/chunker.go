package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultOverlapSize  = 200
	DefaultMinChunkSize = 20
)

// Options control how document text is split into chunks.
type Options struct {
	ChunkSize    int
	OverlapSize  int
	MinChunkSize int
}

func DefaultOptions() Options {
	return Options{
		ChunkSize:    DefaultChunkSize,
		OverlapSize:  DefaultOverlapSize,
		MinChunkSize: DefaultMinChunkSize,
	}
}

// Blank-line paragraph boundary: a newline, optional whitespace, newline.
var paragraphSep = regexp.MustCompile(`\n\s*\n`)

// Split breaks text into overlapping, size-bounded chunks.
//
// Text that fits in a single chunk is returned whole, even when shorter
// than MinChunkSize. Longer text is split on blank lines and paragraphs
// are greedily packed into chunks of at most ChunkSize bytes; each chunk
// after the first starts with the trailing OverlapSize bytes of its
// predecessor. Chunks whose trimmed length is <= MinChunkSize are dropped,
// except for the whole-text case above.
func Split(text string, opts Options) []string {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.OverlapSize < 0 {
		opts.OverlapSize = 0
	}
	if opts.OverlapSize >= opts.ChunkSize {
		opts.OverlapSize = opts.ChunkSize / 2
	}

	if len(text) <= opts.ChunkSize {
		return []string{text}
	}

	var chunks []string
	var buf strings.Builder
	for _, paragraph := range paragraphSep.Split(text, -1) {
		if buf.Len()+len(paragraph) > opts.ChunkSize && buf.Len() > 0 {
			chunk := buf.String()
			chunks = append(chunks, chunk)
			buf.Reset()
			if len(chunk) > opts.OverlapSize {
				buf.WriteString(overlapTail(chunk, opts.OverlapSize))
			}
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(paragraph)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}

	kept := chunks[:0]
	for _, chunk := range chunks {
		if len(strings.TrimSpace(chunk)) > opts.MinChunkSize {
			kept = append(kept, chunk)
		}
	}
	return kept
}

// overlapTail returns the trailing n bytes of s, advanced past any partial
// rune so the seed of the next chunk is valid UTF-8.
func overlapTail(s string, n int) string {
	tail := s[len(s)-n:]
	for len(tail) > 0 && !utf8.RuneStart(tail[0]) {
		tail = tail[1:]
	}
	return tail
}
