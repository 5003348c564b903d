package engine

import "time"

type options struct {
	content        string
	suggesting     bool
	readOnly       bool
	maxUndoEntries int
	now            func() time.Time
}

func newOptions() options {
	return options{
		maxUndoEntries: DefaultMaxUndoEntries,
		now:            time.Now,
	}
}

// DefaultMaxUndoEntries bounds the undo stack when no option overrides it.
const DefaultMaxUndoEntries = 1000

// Option configures an Editor during creation.
type Option func(*options)

// WithContent seeds the document with unstyled text, one block per line.
func WithContent(content string) Option {
	return func(o *options) { o.content = content }
}

// WithSuggesting starts the editor in suggesting mode.
func WithSuggesting() Option {
	return func(o *options) { o.suggesting = true }
}

// WithReadOnly creates a read-only editor. Write operations return
// ErrReadOnly.
func WithReadOnly() Option {
	return func(o *options) { o.readOnly = true }
}

// WithMaxUndoEntries bounds the undo stack depth.
func WithMaxUndoEntries(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxUndoEntries = n
		}
	}
}

// WithClock overrides the time source used to stamp suggestions.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
