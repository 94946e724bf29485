// Package config holds the run inputs for document generation and the
// precedence rules for resolving them: flags > environment > config file >
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/livedoc/go-livedoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrMissingInput   = errors.New("pdf_ready_json input is required but was not provided")
	ErrInvalidBool    = errors.New("invalid boolean value")
)

// DefaultOutputPath is used when no output path is configured.
const DefaultOutputPath = "output.pdf"

// Environment variable names for the GitHub-Action-style input surface.
const (
	EnvPdfReadyJSON = "INPUT_PDF_READY_JSON"
	EnvOutputPath   = "INPUT_OUTPUT_PATH"
	EnvTemplateDir  = "INPUT_TEMPLATE_DIR"
	EnvDebugHTML    = "INPUT_DEBUG_HTML"
	EnvVerbose      = "INPUT_VERBOSE"
	EnvRunnerDebug  = "RUNNER_DEBUG"
)

// Inputs holds the recognized run options.
type Inputs struct {
	PdfReadyJSON string `yaml:"pdf_ready_json"` // required path to the canonical JSON
	OutputPath   string `yaml:"output_path"`    // default "output.pdf"
	TemplateDir  string `yaml:"template_dir"`   // optional custom template pack
	DebugHTML    bool   `yaml:"debug_html"`     // also write the rendered HTML
	Verbose      bool   `yaml:"verbose"`        // progress output on stderr
	Timeout      string `yaml:"timeout"`        // PDF generation timeout, Go duration syntax
}

// Default returns inputs with default values.
func Default() *Inputs {
	return &Inputs{OutputPath: DefaultOutputPath}
}

// LoadFile reads inputs from a YAML config file.
func LoadFile(path string) (*Inputs, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	in := Default()
	if err := yamlutil.UnmarshalStrict(data, in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if in.OutputPath == "" {
		in.OutputPath = DefaultOutputPath
	}
	return in, nil
}

// ApplyEnv overlays INPUT_* environment variables onto in. A set variable
// replaces the current value, so callers load the config file first and
// overlay flags afterwards to get flags > env > config file precedence.
// RUNNER_DEBUG=1 always enables verbose.
func (in *Inputs) ApplyEnv() error {
	if v := os.Getenv(EnvPdfReadyJSON); v != "" {
		in.PdfReadyJSON = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvOutputPath); v != "" {
		in.OutputPath = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvTemplateDir); v != "" {
		in.TemplateDir = strings.TrimSpace(v)
	}
	if v := os.Getenv(EnvDebugHTML); v != "" {
		b, err := ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebugHTML, err)
		}
		in.DebugHTML = b
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		in.Verbose = b
	}
	if os.Getenv(EnvRunnerDebug) == "1" {
		in.Verbose = true
	}
	return nil
}

// Validate checks that required inputs are present.
func (in *Inputs) Validate() error {
	if strings.TrimSpace(in.PdfReadyJSON) == "" {
		return ErrMissingInput
	}
	if strings.TrimSpace(in.OutputPath) == "" {
		return fmt.Errorf("%w: output_path cannot be empty", ErrConfigParse)
	}
	return nil
}

// ParseBool parses true/false/1/0/yes/no case-insensitively.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q (expected true/false/1/0/yes/no)", ErrInvalidBool, s)
	}
}
