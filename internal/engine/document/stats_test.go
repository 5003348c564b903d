package document

import "testing"

func TestComputeStats(t *testing.T) {
	d := New(WithText("hello world\nsecond line here"))

	s := d.ComputeStats()
	if s.Blocks != 2 {
		t.Errorf("expected 2 blocks, got %d", s.Blocks)
	}
	if s.Words != 5 {
		t.Errorf("expected 5 words, got %d", s.Words)
	}
	if s.Characters != 27 {
		t.Errorf("expected 27 characters, got %d", s.Characters)
	}
}

func TestComputeStatsGraphemes(t *testing.T) {
	// Multiple code points, two perceived characters.
	d := New(WithText("é🇺🇸"))

	s := d.ComputeStats()
	if s.Characters != 2 {
		t.Errorf("expected 2 grapheme clusters, got %d", s.Characters)
	}
}

func TestComputeStatsIgnoresPunctuation(t *testing.T) {
	d := New(WithText("one, two -- three!"))

	s := d.ComputeStats()
	if s.Words != 3 {
		t.Errorf("punctuation segments should not count as words, got %d", s.Words)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	d := New()

	s := d.ComputeStats()
	if s.Blocks != 1 || s.Characters != 0 || s.Words != 0 {
		t.Errorf("unexpected stats for empty document: %+v", s)
	}
}
