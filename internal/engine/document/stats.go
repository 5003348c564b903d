package document

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Stats summarizes the document text for the shell's counters.
type Stats struct {
	Blocks     int
	Characters int // grapheme clusters, not bytes
	Words      int
}

// ComputeStats walks the document text with Unicode segmentation so
// counts match what a user perceives (one count per grapheme cluster,
// words split per UAX #29).
func (d *Document) ComputeStats() Stats {
	s := Stats{Blocks: len(d.blocks)}
	for _, b := range d.blocks {
		text := b.Text()
		s.Characters += uniseg.GraphemeClusterCount(text)
		s.Words += countWords(text)
	}
	return s
}

func countWords(text string) int {
	count := 0
	state := -1
	for len(text) > 0 {
		word, rest, newState := uniseg.FirstWordInString(text, state)
		if wordLike(word) {
			count++
		}
		text, state = rest, newState
	}
	return count
}

// wordLike reports whether a UAX #29 segment contains at least one
// letter or digit, filtering out whitespace and punctuation segments.
func wordLike(segment string) bool {
	for i := 0; i < len(segment); {
		r, size := utf8.DecodeRuneInString(segment[i:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
		i += size
	}
	return false
}
