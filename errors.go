package livedoc

import (
	"errors"
	"fmt"
)

// Category sentinels. Every error leaving the pipeline unwraps to exactly one
// of these; the CLI translates each category into a fixed exit code.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrTemplate         = errors.New("template error")
	ErrRendering        = errors.New("rendering failed")
	ErrFileWrite        = errors.New("file I/O error")
)

// Browser-level sentinels. All unwrap to ErrRendering through rendering
// errors so the exit-code mapping stays a single errors.Is chain.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// pipelineError attaches a category sentinel to a human-readable message.
// Error() carries only "{detail}. {guidance}"; the CLI adds the category
// prefix so the message is never doubled.
type pipelineError struct {
	category error
	msg      string
}

func (e *pipelineError) Error() string { return e.msg }

func (e *pipelineError) Unwrap() error { return e.category }

// invalidInputError builds an exit-code-1 error (unreadable file, bad JSON).
func invalidInputError(format string, args ...any) error {
	return &pipelineError{category: ErrInvalidInput, msg: fmt.Sprintf(format, args...)}
}

// fileWriteError builds an exit-code-5 error for output artifact failures.
func fileWriteError(format string, args ...any) error {
	return &pipelineError{category: ErrFileWrite, msg: fmt.Sprintf(format, args...)}
}

// renderingError builds an exit-code-4 error wrapping a browser or context
// sentinel.
func renderingError(sentinel error, detail string) error {
	return &renderError{sentinel: sentinel, detail: detail}
}

// renderError is a rendering failure carrying the specific cause (a browser
// sentinel or a context error). It unwraps to both the cause and ErrRendering,
// so a cancelled run still classifies as a rendering failure.
type renderError struct {
	sentinel error
	detail   string
}

func (e *renderError) Error() string {
	return fmt.Sprintf("%v: %s", e.sentinel, e.detail)
}

func (e *renderError) Is(target error) bool {
	return target == ErrRendering || errors.Is(e.sentinel, target)
}

func (e *renderError) Unwrap() error { return e.sentinel }

// ViolationKind identifies the class of a schema violation. The kind-to-
// guidance mapping in validate.go is a stable, test-facing contract.
type ViolationKind string

// Violation kinds recognized by the validator.
const (
	KindMissingField     ViolationKind = "missing_required_field"
	KindWrongType        ViolationKind = "wrong_type"
	KindWrongVersion     ViolationKind = "wrong_schema_version"
	KindEmptyValue       ViolationKind = "empty_value"
	KindValueTooLong     ViolationKind = "value_too_long"
	KindEmptyArray       ViolationKind = "empty_array"
	KindNegativeNumber   ViolationKind = "negative_number"
	KindInvalidTimestamp ViolationKind = "invalid_timestamp"
	KindTimestampOrder   ViolationKind = "timestamp_order"
	KindInvalidURL       ViolationKind = "invalid_url"
	KindDuplicateID      ViolationKind = "duplicate_id"
	KindSummaryMismatch  ViolationKind = "summary_sum_mismatch"
	KindUnknownSection   ViolationKind = "unknown_section_key"
)

// SchemaError reports the first schema violation found in the input.
// FieldPath is dotted with numeric indices (e.g. "content.user_stories.0.url").
type SchemaError struct {
	FieldPath string
	Kind      ViolationKind
	Detail    string
}

// Error returns "{detail}. {guidance}" where the guidance string is fixed
// per violation kind.
func (e *SchemaError) Error() string {
	return e.Detail + ". " + guidanceFor(e.Kind)
}

func (e *SchemaError) Unwrap() error { return ErrSchemaValidation }

// TemplateError reports a missing template file or a parse/binding failure,
// naming the file and, when available, the line number.
type TemplateError struct {
	File string
	Line int    // 0 when no line information is available
	Msg  string // empty for "not found", otherwise the engine's detail
}

// Error returns "{detail}. {guidance}" matching the stable message contract.
func (e *TemplateError) Error() string {
	switch {
	case e.Msg == "":
		return fmt.Sprintf("Template '%s' not found. Check template_dir path or use default templates.", e.File)
	case e.Line > 0:
		return fmt.Sprintf("Syntax error in '%s' at line %d: %s. Fix template syntax.", e.File, e.Line, e.Msg)
	default:
		return fmt.Sprintf("Error in '%s': %s. Fix template syntax.", e.File, e.Msg)
	}
}

func (e *TemplateError) Unwrap() error { return ErrTemplate }
