// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across commands.
package emoji

// Status symbols.
const (
	// Success marks a check that passed.
	Success = "✓"

	// Error marks a failure.
	Error = "✗"

	// Warning marks a non-fatal problem.
	Warning = "!"
)

// Change symbols prefix watch events.
const (
	Added   = "+"
	Updated = "~"
	Removed = "-"
)

// Status returns Success when ok and Error otherwise.
func Status(ok bool) string {
	if ok {
		return Success
	}
	return Error
}
