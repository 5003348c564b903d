// Package convert moves documents between the internal block model and
// external formats: markdown import, HTML import and export.
//
// HTML export embeds a session marker and per-character style
// annotations, so content copied out of a session and pasted back into
// the same session keeps its suggestion tags. Foreign HTML is run
// through a sanitizer instead and only structure, basic formatting and
// links survive.
package convert
