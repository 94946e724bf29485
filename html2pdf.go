package livedoc

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/livedoc/go-livedoc/internal/fileutil"
)

// PDFMetadata is embedded into the generated document. Title becomes the
// PDF's document title; version and creation date are exposed as meta tags.
type PDFMetadata struct {
	Title     string
	Version   string
	CreatedAt string
}

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
// baseDir is the directory relative asset URLs (fonts, images) resolve
// against; the converter performs no network I/O.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent, baseDir string, meta *PDFMetadata) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ pdfConverter = (*rodConverter)(nil)

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodConverter struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodConverter creates a rodConverter with the given timeout.
func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (c *rodConverter) ensureBrowser() error {
	if c.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (Docker/CI environments).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return renderingError(ErrBrowserConnect, err.Error())
	}

	c.browser = rod.New().ControlURL(u)
	if err := c.browser.Connect(); err != nil {
		c.browser = nil
		return renderingError(ErrBrowserConnect, err.Error())
	}
	return nil
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.browser != nil {
		err := c.browser.Close()
		c.browser = nil
		return err
	}
	return nil
}

// ToPDF renders htmlContent to PDF bytes. The HTML is staged as a file
// inside baseDir so file:// relative references resolve against the
// template pack; the staged file is removed afterwards.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent, baseDir string, meta *PDFMetadata) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, renderingError(err, "PDF generation aborted")
	}

	htmlContent = injectDocumentMetadata(htmlContent, meta)

	tmpPath, cleanup, err := fileutil.WriteTempFile(baseDir, htmlContent, "html")
	if err != nil {
		return nil, renderingError(ErrPDFGeneration, fmt.Sprintf("staging HTML: %v", err))
	}
	defer cleanup()

	return c.renderFromFile(ctx, tmpPath)
}

// renderFromFile opens a local HTML file in headless Chrome and prints it.
func (c *rodConverter) renderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := c.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := c.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, renderingError(ErrPageCreate, err.Error())
	}
	defer page.Close()

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, renderingError(context.DeadlineExceeded, "PDF generation aborted")
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, renderingError(ErrPageLoad, err.Error())
	}

	if err := ctx.Err(); err != nil {
		return nil, renderingError(err, "PDF generation aborted")
	}

	reader, err := page.PDF(buildPDFOptions())
	if err != nil {
		return nil, renderingError(ErrPDFGeneration, err.Error())
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, renderingError(ErrPDFGeneration, fmt.Sprintf("reading PDF stream: %v", err))
	}

	return pdfBuf, nil
}

// PDF page dimensions in inches (US Letter), used when the stylesheet
// carries no @page rule.
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
)

// buildPDFOptions constructs print options. The pack stylesheet's @page rule
// wins when present (PreferCSSPageSize); Letter is the fallback.
func buildPDFOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(paperWidthInches),
		PaperHeight:       floatPtr(paperHeightInches),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

// injectDocumentMetadata ensures title/version/created metadata is present in
// the HTML head. Tags already emitted by the template pack are left alone.
// Insertion mirrors head injection: before </head> when present, otherwise
// after <body>, otherwise prepended.
func injectDocumentMetadata(htmlContent string, meta *PDFMetadata) string {
	if meta == nil {
		return htmlContent
	}

	lowerHTML := strings.ToLower(htmlContent)
	var block strings.Builder

	if meta.Title != "" && !strings.Contains(lowerHTML, "<title>") {
		block.WriteString("<title>" + html.EscapeString(meta.Title) + "</title>")
	}
	if meta.Version != "" && !strings.Contains(lowerHTML, `name="document-version"`) {
		block.WriteString(`<meta name="document-version" content="` + html.EscapeString(meta.Version) + `"/>`)
	}
	if meta.CreatedAt != "" && !strings.Contains(lowerHTML, `name="generated-at"`) {
		block.WriteString(`<meta name="generated-at" content="` + html.EscapeString(meta.CreatedAt) + `"/>`)
	}

	if block.Len() == 0 {
		return htmlContent
	}

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + block.String() + htmlContent[idx:]
	}
	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + block.String() + htmlContent[insertPos:]
		}
	}
	return block.String() + htmlContent
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
