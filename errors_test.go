package livedoc

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSchemaErrorMessage(t *testing.T) {
	t.Parallel()

	err := &SchemaError{
		FieldPath: "meta.document_title",
		Kind:      KindMissingField,
		Detail:    "Missing required field 'document_title' at meta",
	}
	want := "Missing required field 'document_title' at meta. Ensure JSON follows canonical schema v1.0."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrSchemaValidation) {
		t.Error("SchemaError does not unwrap to ErrSchemaValidation")
	}
}

func TestTemplateErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *TemplateError
		want string
	}{
		{
			name: "not found",
			err:  &TemplateError{File: "templates/main.html.tmpl"},
			want: "Template 'templates/main.html.tmpl' not found. Check template_dir path or use default templates.",
		},
		{
			name: "syntax error with line",
			err:  &TemplateError{File: "templates/main.html.tmpl", Line: 12, Msg: "unclosed action"},
			want: "Syntax error in 'templates/main.html.tmpl' at line 12: unclosed action. Fix template syntax.",
		},
		{
			name: "error without line",
			err:  &TemplateError{File: "templates/user_story.html.tmpl", Msg: "bad range"},
			want: "Error in 'templates/user_story.html.tmpl': bad range. Fix template syntax.",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrTemplate) {
				t.Error("TemplateError does not unwrap to ErrTemplate")
			}
		})
	}
}

func TestRenderingErrorChain(t *testing.T) {
	t.Parallel()

	err := renderingError(ErrBrowserConnect, "connection refused")
	if !errors.Is(err, ErrRendering) {
		t.Error("missing ErrRendering in chain")
	}
	if !errors.Is(err, ErrBrowserConnect) {
		t.Error("missing ErrBrowserConnect in chain")
	}
	if errors.Is(err, ErrFileWrite) {
		t.Error("unexpected ErrFileWrite in chain")
	}
}

func TestRenderingErrorWrapsContextErrors(t *testing.T) {
	t.Parallel()

	// A deadline hit during PDF generation is a rendering failure, not an
	// input error; both sentinels must be visible in the chain.
	err := renderingError(context.DeadlineExceeded, "PDF generation aborted")
	if !errors.Is(err, ErrRendering) {
		t.Error("missing ErrRendering in chain")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("missing context.DeadlineExceeded in chain")
	}
	if !strings.Contains(err.Error(), "PDF generation aborted") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestPipelineErrorCategories(t *testing.T) {
	t.Parallel()

	inputErr := invalidInputError("File '%s' not found", "x.json")
	if !errors.Is(inputErr, ErrInvalidInput) {
		t.Error("invalidInputError does not match ErrInvalidInput")
	}

	writeErr := fileWriteError("Cannot write '%s'", "out.pdf")
	if !errors.Is(writeErr, ErrFileWrite) {
		t.Error("fileWriteError does not match ErrFileWrite")
	}
}
