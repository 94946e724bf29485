package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	in := Default()
	if in.PdfReadyJSON != "" {
		t.Errorf("PdfReadyJSON = %q, want empty", in.PdfReadyJSON)
	}
	if in.OutputPath != DefaultOutputPath {
		t.Errorf("OutputPath = %q, want %q", in.OutputPath, DefaultOutputPath)
	}
	if in.DebugHTML || in.Verbose {
		t.Error("boolean inputs default to true, want false")
	}
}

func TestParseBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"True", true, false},
		{"1", true, false},
		{"yes", true, false},
		{"YES", true, false},
		{"false", false, false},
		{"0", false, false},
		{"no", false, false},
		{"No", false, false},
		{" true ", true, false},
		{"on", false, true},
		{"2", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseBool(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidBool) {
					t.Errorf("error = %v, want ErrInvalidBool", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseBool(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "livedoc.yaml")
	content := `pdf_ready_json: docs/pdf_ready.json
output_path: docs/report.pdf
template_dir: packs/corporate
debug_html: true
timeout: 90s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	in, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.PdfReadyJSON != "docs/pdf_ready.json" {
		t.Errorf("PdfReadyJSON = %q", in.PdfReadyJSON)
	}
	if in.OutputPath != "docs/report.pdf" {
		t.Errorf("OutputPath = %q", in.OutputPath)
	}
	if in.TemplateDir != "packs/corporate" {
		t.Errorf("TemplateDir = %q", in.TemplateDir)
	}
	if !in.DebugHTML {
		t.Error("DebugHTML = false, want true")
	}
	if in.Timeout != "90s" {
		t.Errorf("Timeout = %q", in.Timeout)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadFileUnknownKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "livedoc.yaml")
	if err := os.WriteFile(path, []byte("no_such_key: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.Is(err, ErrConfigParse) {
		t.Errorf("error = %v, want ErrConfigParse", err)
	}
}

func TestLoadFileDefaultsOutputPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "livedoc.yaml")
	if err := os.WriteFile(path, []byte("pdf_ready_json: x.json\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	in, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if in.OutputPath != DefaultOutputPath {
		t.Errorf("OutputPath = %q, want %q", in.OutputPath, DefaultOutputPath)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPdfReadyJSON, "env.json")
	t.Setenv(EnvOutputPath, "env.pdf")
	t.Setenv(EnvDebugHTML, "yes")
	t.Setenv(EnvVerbose, "0")

	in := Default()
	if err := in.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.PdfReadyJSON != "env.json" {
		t.Errorf("PdfReadyJSON = %q", in.PdfReadyJSON)
	}
	if in.OutputPath != "env.pdf" {
		t.Errorf("OutputPath = %q", in.OutputPath)
	}
	if !in.DebugHTML {
		t.Error("DebugHTML = false, want true from INPUT_DEBUG_HTML=yes")
	}
	if in.Verbose {
		t.Error("Verbose = true, want false from INPUT_VERBOSE=0")
	}
}

func TestApplyEnvOverridesConfigValues(t *testing.T) {
	t.Setenv(EnvPdfReadyJSON, "env.json")
	t.Setenv(EnvOutputPath, "env.pdf")

	// Values loaded from a config file lose to set environment variables;
	// flags keep precedence because callers overlay them afterwards.
	in := Default()
	in.PdfReadyJSON = "config.json"
	in.OutputPath = "config.pdf"
	if err := in.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.PdfReadyJSON != "env.json" {
		t.Errorf("PdfReadyJSON = %q, want env override", in.PdfReadyJSON)
	}
	if in.OutputPath != "env.pdf" {
		t.Errorf("OutputPath = %q, want env override", in.OutputPath)
	}
}

func TestApplyEnvRunnerDebug(t *testing.T) {
	t.Setenv(EnvRunnerDebug, "1")

	in := Default()
	if err := in.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in.Verbose {
		t.Error("Verbose = false, want true from RUNNER_DEBUG=1")
	}
}

func TestApplyEnvInvalidBool(t *testing.T) {
	t.Setenv(EnvDebugHTML, "maybe")

	in := Default()
	err := in.ApplyEnv()
	if !errors.Is(err, ErrInvalidBool) {
		t.Errorf("error = %v, want ErrInvalidBool", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	in := Default()
	if err := in.Validate(); !errors.Is(err, ErrMissingInput) {
		t.Errorf("error = %v, want ErrMissingInput", err)
	}

	in.PdfReadyJSON = "x.json"
	if err := in.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	in.OutputPath = "  "
	if err := in.Validate(); !errors.Is(err, ErrConfigParse) {
		t.Errorf("error = %v, want ErrConfigParse for empty output path", err)
	}
}
