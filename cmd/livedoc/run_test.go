package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	livedoc "github.com/livedoc/go-livedoc"
	"github.com/livedoc/go-livedoc/internal/config"
)

// fakeGenerator records the inputs it receives and returns a canned result.
type fakeGenerator struct {
	got    livedoc.Inputs
	result *livedoc.Result
	err    error
	closed bool
}

func (f *fakeGenerator) Generate(_ context.Context, in livedoc.Inputs) (*livedoc.Result, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeGenerator) Close() error {
	f.closed = true
	return nil
}

func testEnv(fake *fakeGenerator) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		NewGenerator: func(_ ...livedoc.Option) DocumentGenerator {
			return fake
		},
	}
	return env, stdout, stderr
}

func successResult() *livedoc.Result {
	return &livedoc.Result{
		PDFPath:    "/abs/out.pdf",
		ReportPath: "/abs/out_report.json",
		Report:     &livedoc.PdfReport{Warnings: []livedoc.Warning{}},
	}
}

func clearInputEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvPdfReadyJSON, config.EnvOutputPath, config.EnvTemplateDir,
		config.EnvDebugHTML, config.EnvVerbose, config.EnvRunnerDebug,
	} {
		t.Setenv(key, "")
	}
}

func TestRunSuccess(t *testing.T) {
	clearInputEnv(t)

	fake := &fakeGenerator{result: successResult()}
	env, stdout, _ := testEnv(fake)

	err := run([]string{"livedoc", "--input", "in.json", "--output", "out.pdf"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.got.InputPath != "in.json" {
		t.Errorf("InputPath = %q", fake.got.InputPath)
	}
	if fake.got.OutputPath != "out.pdf" {
		t.Errorf("OutputPath = %q", fake.got.OutputPath)
	}
	if !fake.closed {
		t.Error("generator not closed")
	}

	out := stdout.String()
	if strings.Contains(out, "Created") {
		t.Errorf("stdout = %q, human output mixed into machine output", out)
	}
	if !strings.Contains(out, "pdf-path=/abs/out.pdf") {
		t.Errorf("stdout = %q, want pdf-path output", out)
	}
	if !strings.Contains(out, "report-path=/abs/out_report.json") {
		t.Errorf("stdout = %q, want report-path output", out)
	}
	if strings.Contains(out, "html-path=") {
		t.Errorf("stdout = %q, html-path without debug HTML", out)
	}
}

func TestRunPositionalInput(t *testing.T) {
	clearInputEnv(t)

	fake := &fakeGenerator{result: successResult()}
	env, _, _ := testEnv(fake)

	if err := run([]string{"livedoc", "in.json"}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got.InputPath != "in.json" {
		t.Errorf("InputPath = %q, want positional argument", fake.got.InputPath)
	}
	if fake.got.OutputPath != config.DefaultOutputPath {
		t.Errorf("OutputPath = %q, want default", fake.got.OutputPath)
	}
}

func TestRunMissingInput(t *testing.T) {
	clearInputEnv(t)

	env, _, _ := testEnv(&fakeGenerator{result: successResult()})

	err := run([]string{"livedoc"}, env)
	if !errors.Is(err, config.ErrMissingInput) {
		t.Fatalf("error = %v, want ErrMissingInput", err)
	}
	if exitCodeFor(err) != ExitInvalidInput {
		t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitInvalidInput)
	}
}

func TestRunEnvFallback(t *testing.T) {
	clearInputEnv(t)
	t.Setenv(config.EnvPdfReadyJSON, "env.json")
	t.Setenv(config.EnvDebugHTML, "yes")

	fake := &fakeGenerator{result: successResult()}
	env, _, _ := testEnv(fake)

	if err := run([]string{"livedoc"}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got.InputPath != "env.json" {
		t.Errorf("InputPath = %q, want env value", fake.got.InputPath)
	}
	if !fake.got.DebugHTML {
		t.Error("DebugHTML = false, want true from INPUT_DEBUG_HTML")
	}
}

func TestRunFlagBeatsEnv(t *testing.T) {
	clearInputEnv(t)
	t.Setenv(config.EnvPdfReadyJSON, "env.json")

	fake := &fakeGenerator{result: successResult()}
	env, _, _ := testEnv(fake)

	if err := run([]string{"livedoc", "--input", "flag.json"}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got.InputPath != "flag.json" {
		t.Errorf("InputPath = %q, want flag value over env", fake.got.InputPath)
	}
}

func TestRunConfigFile(t *testing.T) {
	clearInputEnv(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "livedoc.yaml")
	cfg := "pdf_ready_json: from-config.json\noutput_path: from-config.pdf\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	fake := &fakeGenerator{result: successResult()}
	env, _, _ := testEnv(fake)

	if err := run([]string{"livedoc", "--config", cfgPath}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got.InputPath != "from-config.json" {
		t.Errorf("InputPath = %q", fake.got.InputPath)
	}
	if fake.got.OutputPath != "from-config.pdf" {
		t.Errorf("OutputPath = %q", fake.got.OutputPath)
	}
}

func TestRunEnvBeatsConfigFile(t *testing.T) {
	clearInputEnv(t)
	t.Setenv(config.EnvOutputPath, "env.pdf")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "livedoc.yaml")
	cfg := "pdf_ready_json: from-config.json\noutput_path: from-config.pdf\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	fake := &fakeGenerator{result: successResult()}
	env, _, _ := testEnv(fake)

	if err := run([]string{"livedoc", "--config", cfgPath}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got.OutputPath != "env.pdf" {
		t.Errorf("OutputPath = %q, want env value over config file", fake.got.OutputPath)
	}
	if fake.got.InputPath != "from-config.json" {
		t.Errorf("InputPath = %q, want config value where env is unset", fake.got.InputPath)
	}
}

func TestRunInvalidTimeout(t *testing.T) {
	clearInputEnv(t)

	env, _, _ := testEnv(&fakeGenerator{result: successResult()})

	err := run([]string{"livedoc", "--input", "in.json", "--timeout", "fast"}, env)
	if !errors.Is(err, config.ErrConfigParse) {
		t.Fatalf("error = %v, want ErrConfigParse", err)
	}
}

func TestRunInvalidBoolFlag(t *testing.T) {
	clearInputEnv(t)

	env, _, _ := testEnv(&fakeGenerator{result: successResult()})

	err := run([]string{"livedoc", "--input", "in.json", "--debug-html=maybe"}, env)
	if !errors.Is(err, config.ErrInvalidBool) {
		t.Fatalf("error = %v, want ErrInvalidBool", err)
	}
}

func TestRunGenerateFailurePropagates(t *testing.T) {
	clearInputEnv(t)

	genErr := &livedoc.SchemaError{
		Kind:   livedoc.KindMissingField,
		Detail: "Missing required field 'meta'",
	}
	fake := &fakeGenerator{err: genErr}
	env, stdout, _ := testEnv(fake)

	err := run([]string{"livedoc", "--input", "in.json"}, env)
	if !errors.Is(err, livedoc.ErrSchemaValidation) {
		t.Fatalf("error = %v, want ErrSchemaValidation", err)
	}
	if !fake.closed {
		t.Error("generator not closed after failure")
	}
	if strings.Contains(stdout.String(), "Created") {
		t.Error("success output printed despite failure")
	}
}

func TestRunVerboseOutput(t *testing.T) {
	clearInputEnv(t)

	fake := &fakeGenerator{result: successResult()}
	env, _, stderr := testEnv(fake)

	if err := run([]string{"livedoc", "--input", "in.json", "--verbose"}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr.String(), "Validating in.json") {
		t.Errorf("stderr = %q, want progress output", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Created /abs/out.pdf") {
		t.Errorf("stderr = %q, want success line when verbose", stderr.String())
	}
}

func TestRunWarningsGoToStderr(t *testing.T) {
	clearInputEnv(t)

	result := successResult()
	result.Report.Warnings = []livedoc.Warning{{
		Level:   livedoc.WarningLevel,
		Message: "User story 'US-2' has no acceptance_criteria section",
		Context: "user_stories[1]",
	}}
	fake := &fakeGenerator{result: result}
	env, stdout, stderr := testEnv(fake)

	if err := run([]string{"livedoc", "--input", "in.json"}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stderr.String(), "has no acceptance_criteria section") {
		t.Errorf("stderr = %q, want warning", stderr.String())
	}
	if strings.Contains(stdout.String(), "acceptance_criteria") {
		t.Error("warning leaked to stdout")
	}
}

func TestRunHelp(t *testing.T) {
	clearInputEnv(t)

	env, stdout, _ := testEnv(&fakeGenerator{})

	if err := run([]string{"livedoc", "--help"}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "Usage: livedoc") {
		t.Errorf("stdout = %q, want usage", out)
	}
	if !strings.Contains(out, "Exit codes:") {
		t.Error("usage missing exit code table")
	}
}

func TestRunVersion(t *testing.T) {
	clearInputEnv(t)

	env, stdout, _ := testEnv(&fakeGenerator{})

	if err := run([]string{"livedoc", "--version"}, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout.String(), "livedoc") {
		t.Errorf("stdout = %q, want version line", stdout.String())
	}
}
