package livedoc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/livedoc/go-livedoc/internal/fileutil"
)

// Artifact naming suffixes, appended to the PDF's base name.
const (
	debugHTMLSuffix = "_rendered.html"
	reportSuffix    = "_report.json"
)

// defaultTimeout bounds PDF generation when no timeout is specified.
const defaultTimeout = 2 * time.Minute

// Inputs are the per-run parameters for Generate.
type Inputs struct {
	InputPath   string // required path to the canonical JSON
	OutputPath  string // default "output.pdf"
	TemplateDir string // optional custom template pack directory
	DebugHTML   bool   // also write the rendered HTML next to the PDF
}

// Result lists the artifacts of a successful run; all paths are absolute.
type Result struct {
	PDFPath    string
	HTMLPath   string // empty unless DebugHTML was requested
	ReportPath string
	Report     *PdfReport
}

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout time.Duration
	now     func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout sets the PDF generation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("livedoc: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithClock overrides the time source used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.cfg.now = now
	}
}

// Generator orchestrates the validate-render-print pipeline. The stages run
// strictly in sequence; each performs one unit of work and either advances
// or fails the run. No stage is retried and no partial artifact survives a
// failure.
type Generator struct {
	cfg generatorConfig
	pdf pdfConverter
}

// NewGenerator creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithTimeout).
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		cfg: generatorConfig{timeout: defaultTimeout, now: time.Now},
	}

	for _, opt := range opts {
		opt(g)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if g.pdf == nil {
		g.pdf = newRodConverter(g.cfg.timeout)
	}

	return g
}

// Close releases resources (headless Chrome browser).
func (g *Generator) Close() error {
	if g.pdf != nil {
		return g.pdf.Close()
	}
	return nil
}

// Generate runs the full pipeline: load, validate, resolve templates,
// render, print to PDF, and write the artifacts (PDF, optional debug HTML,
// report). Writes are atomic: either every requested artifact appears at its
// final path or none do.
func (g *Generator) Generate(ctx context.Context, in Inputs) (*Result, error) {
	if in.OutputPath == "" {
		in.OutputPath = "output.pdf"
	}

	// Loading
	raw, err := os.ReadFile(in.InputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, invalidInputError("File '%s' not found. Ensure pdf_ready_json points to a valid file.", in.InputPath)
		}
		return nil, invalidInputError("File '%s' is not readable: %v. Ensure pdf_ready_json points to a valid file.", in.InputPath, err)
	}

	// Validating
	doc, err := Validate(raw)
	if err != nil {
		return nil, err
	}

	// TemplateLoading
	renderer, err := NewRenderer(in.TemplateDir)
	if err != nil {
		return nil, err
	}

	// Rendering
	htmlContent, warnings, err := renderer.Render(doc)
	if err != nil {
		return nil, err
	}

	baseDir, cleanup, err := renderer.BaseDir()
	if err != nil {
		return nil, &pipelineError{category: ErrRendering, msg: fmt.Sprintf("Preparing template assets failed: %v. Check the template directory is readable.", err)}
	}
	defer cleanup()

	// PdfGenerating
	meta := &PDFMetadata{
		Title:     doc.Meta.DocumentTitle,
		Version:   doc.Meta.DocumentVersion,
		CreatedAt: doc.Meta.GeneratedAt,
	}
	pdfBytes, err := g.pdf.ToPDF(ctx, htmlContent, baseDir, meta)
	if err != nil {
		return nil, err
	}

	// ReportGenerating
	inputPath, err := filepath.Abs(in.InputPath)
	if err != nil {
		inputPath = in.InputPath
	}
	outputPath, err := filepath.Abs(in.OutputPath)
	if err != nil {
		return nil, fileWriteError("Cannot resolve output path '%s': %v. Check the output directory.", in.OutputPath, err)
	}
	report := BuildReport(inputPath, outputPath, renderer.Pack(), doc, warnings, pdfBytes, g.cfg.now())

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fileWriteError("Cannot encode report: %v. This is a bug; please report it.", err)
	}
	reportJSON = append(reportJSON, '\n')

	// OutputsSet
	result := &Result{
		PDFPath:    outputPath,
		ReportPath: artifactPath(outputPath, reportSuffix),
		Report:     report,
	}
	if in.DebugHTML {
		result.HTMLPath = artifactPath(outputPath, debugHTMLSuffix)
	}

	if err := g.writeArtifacts(result, pdfBytes, []byte(htmlContent), reportJSON); err != nil {
		return nil, err
	}

	return result, nil
}

// writeArtifacts commits all artifacts. Each file lands via an atomic
// temp-and-rename write; if any write fails, files committed earlier in the
// same run are removed so no partial output set remains.
func (g *Generator) writeArtifacts(result *Result, pdf, html, report []byte) error {
	if err := os.MkdirAll(filepath.Dir(result.PDFPath), 0o750); err != nil {
		return fileWriteError("Cannot create output directory '%s': %v. Check permissions.", filepath.Dir(result.PDFPath), err)
	}

	type artifact struct {
		path string
		data []byte
	}
	artifacts := []artifact{{result.PDFPath, pdf}}
	if result.HTMLPath != "" {
		artifacts = append(artifacts, artifact{result.HTMLPath, html})
	}
	artifacts = append(artifacts, artifact{result.ReportPath, report})

	var committed []string
	for _, a := range artifacts {
		if err := fileutil.WriteFileAtomic(a.path, a.data, 0o600); err != nil {
			for _, p := range committed {
				_ = os.Remove(p)
			}
			return fileWriteError("Cannot write '%s': %v. Check permissions and disk space.", a.path, err)
		}
		committed = append(committed, a.path)
	}
	return nil
}

// artifactPath derives a sibling artifact name from the PDF output path:
// "docs/report.pdf" + "_rendered.html" -> "docs/report_rendered.html".
func artifactPath(outputPath, suffix string) string {
	base := strings.TrimSuffix(outputPath, filepath.Ext(outputPath))
	return base + suffix
}
