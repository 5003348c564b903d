package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/redline/internal/engine/document"
	"github.com/dshills/redline/internal/engine/suggest"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeEditor(b *testing.B, blocks int) *Editor {
	b.Helper()
	line := strings.Repeat("x", 80)
	parts := make([]string, blocks)
	for i := range parts {
		parts[i] = line
	}
	return New(
		WithContent(strings.Join(parts, "\n")),
		WithClock(func() time.Time { return testDate }),
	)
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkEditorText(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Text()
	}
}

func BenchmarkEditorStats(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Stats()
	}
}

func BenchmarkEditorStyleMap(b *testing.B) {
	e := setupLargeEditor(b, 100)
	e.SetSuggesting(true)
	key := firstKey(e)
	for i := 0; i < 50; i++ {
		e.Select(document.NewRange(key, i, key, i+1, false))
		_ = e.Delete("bob", suggest.Backspace)
		e.Select(document.Collapsed(key, 60+i))
		_ = e.InsertText("carol", "y")
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.StyleMap()
	}
}

func BenchmarkEditorSuggestions(b *testing.B) {
	e := setupLargeEditor(b, 100)
	e.SetSuggesting(true)
	blocks := e.Document().Blocks()
	for i := 0; i < 50; i++ {
		e.Select(document.Collapsed(blocks[i].Key(), 40))
		_ = e.InsertText("bob", "proposed")
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Suggestions()
	}
}

// ============================================================================
// Write Operation Benchmarks
// ============================================================================

func BenchmarkEditorDirectInsert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := New(WithContent("x"), WithClock(func() time.Time { return testDate }))
		key := firstKey(e)
		b.StartTimer()

		for j := 0; j < 500; j++ {
			e.Select(document.Collapsed(key, j))
			_ = e.InsertText("bob", "x")
		}
	}
}

func BenchmarkEditorSuggestedInsert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := New(WithContent("x"), WithSuggesting(),
			WithClock(func() time.Time { return testDate }))
		key := firstKey(e)
		b.StartTimer()

		for j := 0; j < 500; j++ {
			e.Select(document.Collapsed(key, j))
			_ = e.InsertText("bob", "x")
		}
	}
}

func BenchmarkEditorSuggestedDelete(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := setupLargeEditor(b, 10)
		e.SetSuggesting(true)
		key := firstKey(e)
		e.Select(document.Collapsed(key, 70))
		b.StartTimer()

		for j := 0; j < 50; j++ {
			_ = e.Delete("bob", suggest.Backspace)
		}
	}
}

// ============================================================================
// Resolution Benchmarks
// ============================================================================

func BenchmarkEditorResolveAll(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := setupLargeEditor(b, 100)
		e.SetSuggesting(true)
		blocks := e.Document().Blocks()
		for j := 0; j < 50; j++ {
			e.Select(document.Collapsed(blocks[j].Key(), 40))
			_ = e.InsertText("bob", "proposed")
		}
		b.StartTimer()

		_ = e.ResolveAll("ann", true)
	}
}

// ============================================================================
// Undo/Redo Benchmarks
// ============================================================================

func BenchmarkEditorUndo(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := New(WithContent("x"), WithClock(func() time.Time { return testDate }))
		key := firstKey(e)
		for j := 0; j < 100; j++ {
			e.Select(document.Collapsed(key, j))
			_ = e.InsertText("bob", "x")
		}
		b.StartTimer()

		for j := 0; j < 100; j++ {
			_ = e.Undo()
		}
	}
}

// ============================================================================
// Persistence Benchmarks
// ============================================================================

func BenchmarkEditorMarshalRaw(b *testing.B) {
	e := setupLargeEditor(b, 1000)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = e.MarshalRaw()
	}
}
