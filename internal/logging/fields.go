package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldFormat = "format"

	// Document fields.
	FieldSession = "session"
	FieldBlocks  = "blocks"
	FieldChars   = "characters"
	FieldWords   = "words"

	// Suggestion fields.
	FieldStyle    = "style"
	FieldType     = "type"
	FieldAuthor   = "author"
	FieldResolver = "resolver"
	FieldAccepted = "accepted"
	FieldPending  = "pending"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
