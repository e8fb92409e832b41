// Package emoji holds the status symbols printed by CLI commands.
package emoji

// Status symbols.
const (
	// Success marks a completed step: a written file, a stopped server.
	Success = "✓"

	// Error marks a failed step.
	Error = "✗"

	// Stop marks a shutdown in progress.
	Stop = "■"

	// Warning marks something the user should look at but that did not fail.
	Warning = "!"

	// Play marks a server or player that is running.
	Play = "▶"

	// Info marks plain information.
	Info = "i"
)
