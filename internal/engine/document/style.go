package document

import "sort"

// Ordinary inline formatting styles. Highlight tags share the same
// per-character sets but are named TYPE-N and managed by the highlight
// package.
const (
	StyleBold          = "BOLD"
	StyleItalic        = "ITALIC"
	StyleUnderline     = "UNDERLINE"
	StyleSubscript     = "SUBSCRIPT"
	StyleSuperscript   = "SUPERSCRIPT"
	StyleStrikethrough = "STRIKETHROUGH"
)

// FormattingStyles lists the inline styles that survive paste
// sanitization. Anything else on pasted characters is stripped.
var FormattingStyles = []string{
	StyleBold,
	StyleItalic,
	StyleUnderline,
	StyleSubscript,
	StyleSuperscript,
	StyleStrikethrough,
}

// IsFormattingStyle reports whether name is one of the ordinary inline
// formatting styles.
func IsFormattingStyle(name string) bool {
	for _, s := range FormattingStyles {
		if s == name {
			return true
		}
	}
	return false
}

// StyleSet is the set of style names carried by a single character.
// The zero value (nil) is a valid empty set for reads; use NewStyleSet
// before adding.
type StyleSet map[string]struct{}

// NewStyleSet creates a style set containing the given names.
func NewStyleSet(names ...string) StyleSet {
	s := make(StyleSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether the set contains name.
func (s StyleSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts name into the set.
func (s StyleSet) Add(name string) {
	s[name] = struct{}{}
}

// Remove deletes name from the set.
func (s StyleSet) Remove(name string) {
	delete(s, name)
}

// Len returns the number of styles in the set.
func (s StyleSet) Len() int {
	return len(s)
}

// IsEmpty reports whether the set has no styles.
func (s StyleSet) IsEmpty() bool {
	return len(s) == 0
}

// Clone returns an independent copy of the set.
func (s StyleSet) Clone() StyleSet {
	c := make(StyleSet, len(s))
	for n := range s {
		c[n] = struct{}{}
	}
	return c
}

// List returns the style names in sorted order. Sorting keeps every
// consumer that picks "the first matching style" deterministic.
func (s StyleSet) List() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Filter returns the sorted names for which keep returns true.
func (s StyleSet) Filter(keep func(string) bool) []string {
	var names []string
	for n := range s {
		if keep(n) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
