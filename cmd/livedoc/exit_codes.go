package main

import (
	"context"
	"errors"

	livedoc "github.com/livedoc/go-livedoc"
	"github.com/livedoc/go-livedoc/internal/hints"
)

// Exit codes for the livedoc CLI. Each pipeline stage owns one code so
// callers can tell from the exit status alone which stage failed.
const (
	ExitSuccess          = 0 // PDF generated
	ExitInvalidInput     = 1 // Missing file, invalid JSON, bad flags or config
	ExitSchemaValidation = 2 // Canonical schema violation
	ExitTemplate         = 3 // Template not found or failed to parse
	ExitRendering        = 4 // HTML rendering or PDF conversion failure
	ExitFileWrite        = 5 // Could not write an output artifact
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, livedoc.ErrSchemaValidation):
		return ExitSchemaValidation

	case errors.Is(err, livedoc.ErrTemplate):
		return ExitTemplate

	case errors.Is(err, livedoc.ErrRendering),
		errors.Is(err, livedoc.ErrBrowserConnect),
		errors.Is(err, livedoc.ErrPageCreate),
		errors.Is(err, livedoc.ErrPageLoad),
		errors.Is(err, livedoc.ErrPDFGeneration):
		return ExitRendering

	case errors.Is(err, livedoc.ErrFileWrite):
		return ExitFileWrite
	}

	// Flag, config, and input resolution errors all count as invalid input.
	return ExitInvalidInput
}

// messagePrefix returns the stable error prefix for an exit code.
func messagePrefix(code int) string {
	switch code {
	case ExitInvalidInput:
		return "Invalid input:"
	case ExitSchemaValidation:
		return "Schema validation failed:"
	case ExitTemplate:
		return "Template error:"
	case ExitRendering:
		return "Rendering failed:"
	case ExitFileWrite:
		return "File I/O error:"
	}
	return "Error:"
}

// formatError maps an error to its exit code and the single-line stderr
// message, with actionable hints appended for browser and timeout failures.
func formatError(err error) (int, string) {
	code := exitCodeFor(err)
	msg := messagePrefix(code) + " " + err.Error()

	if errors.Is(err, livedoc.ErrBrowserConnect) {
		msg += hints.ForBrowserConnect()
	}
	if errors.Is(err, livedoc.ErrPageLoad) || errors.Is(err, context.DeadlineExceeded) {
		msg += hints.ForTimeout()
	}

	return code, msg
}
