// Package chunker splits cleaned document text into overlapping, bounded-size
// segments along sentence boundaries.
//
// Splitting at sentence-terminal punctuation avoids mid-sentence truncation
// that hurts embedding quality. The overlap carried between neighbouring
// chunks is measured in words (overlap/10 trailing words of the closed
// chunk), not an exact character slice.
package chunker

import (
	"strings"
	"unicode"
)

const (
	// DefaultChunkSize is the target maximum chunk length in characters.
	DefaultChunkSize = 1000

	// DefaultOverlap sets the overlap between neighbouring chunks.
	// The carried overlap is overlap/10 trailing words.
	DefaultOverlap = 200

	// minChunkLength is the minimum trimmed length of an emitted chunk.
	// Shorter fragments are dropped, never stored.
	minChunkLength = 50
)

// Chunker splits text into sentence-aligned overlapping chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a Chunker. Non-positive arguments fall back to the defaults.
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap <= 0 {
		overlap = DefaultOverlap
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Chunk splits text into chunks. The input is cleaned first, so callers may
// pass raw extracted text. Empty or whitespace-only input yields no chunks.
//
// A sentence longer than the chunk size is kept whole, so the resulting
// chunk may exceed the configured size.
func (c *Chunker) Chunk(text string) []string {
	cleaned := Clean(text)
	if cleaned == "" {
		return nil
	}

	sentences := splitSentences(cleaned)

	var chunks []string
	var current strings.Builder

	for _, sentence := range sentences {
		if current.Len()+len(sentence) > c.chunkSize && current.Len() > 0 {
			closed := strings.TrimSpace(current.String())
			chunks = append(chunks, closed)

			current.Reset()
			current.WriteString(c.overlapTail(closed))
			current.WriteString(" ")
			current.WriteString(sentence)
			continue
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}

	if tail := strings.TrimSpace(current.String()); tail != "" {
		chunks = append(chunks, tail)
	}

	kept := chunks[:0]
	for _, chunk := range chunks {
		if len(chunk) > minChunkLength {
			kept = append(kept, chunk)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// overlapTail returns the trailing overlap/10 words of a closed chunk,
// used to seed the next chunk.
func (c *Chunker) overlapTail(closed string) string {
	words := strings.Split(closed, " ")
	n := c.overlap / 10
	if n > len(words) {
		n = len(words)
	}
	return strings.Join(words[len(words)-n:], " ")
}

// splitSentences splits cleaned text into sentence-like units on runs of
// sentence-terminal punctuation, dropping empty units.
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			sentences = append(sentences, part)
		}
	}
	return sentences
}

// Clean collapses runs of whitespace and control characters to single spaces
// and trims the result. Line breaks are treated as whitespace.
func Clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
