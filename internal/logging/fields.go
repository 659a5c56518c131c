package logging

// Field name constants for structured logging. Constants keep key names
// consistent across commands.
const (
	FieldError    = "error"
	FieldInput    = "input"
	FieldOutput   = "output"
	FieldBytesIn  = "bytes_in"
	FieldBytesOut = "bytes_out"
	FieldDuration = "duration"

	// Rendering fields.
	FieldFullPage  = "full_page"
	FieldStreaming = "streaming"
	FieldDetect    = "detect_language"
	FieldTitle     = "title"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
