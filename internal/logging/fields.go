package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldURI   = "uri"
	FieldDir   = "dir"

	// Engine fields.
	FieldEngine     = "engine"
	FieldEngineRoot = "engine_root"
	FieldGeneration = "generation"
	FieldEngineVer  = "engine_version"
	FieldLanguage   = "language"

	// Lint fields.
	FieldRule        = "rule"
	FieldFailures    = "failures"
	FieldDiagnostics = "diagnostics"
	FieldEdits       = "edits"
	FieldDocVersion  = "doc_version"

	// Cache fields.
	FieldCacheHit = "cache_hit"
	FieldCleared  = "cleared"

	// Request fields.
	FieldMethod    = "method"
	FieldRequestID = "request_id"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
