package logger

// Exported for white-box tests of the error rendering.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// ErrorEntry exposes the fields of an errorEntry.
func ErrorEntry(e errorEntry) (string, map[string]any) {
	return e.message, e.metadata
}
