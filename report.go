package livedoc

import (
	"regexp"
	"strconv"
	"time"
)

// BuildReport assembles the machine-readable diagnostics document for a
// successful run. Warnings are kept in emission order (validator first, then
// renderer). Errors is always empty: a report only exists on success.
func BuildReport(inputPath, outputPath string, pack TemplatePack, doc *CanonicalDocument, warnings []Warning, pdf []byte, now time.Time) *PdfReport {
	if warnings == nil {
		warnings = []Warning{}
	}

	report := &PdfReport{
		SchemaVersion: SchemaVersion,
		GeneratedAt:   now.UTC().Format(time.RFC3339),
		InputFile:     inputPath,
		OutputFile:    outputPath,
		TemplatePack:  pack,
		Statistics: Statistics{
			UserStoryCount: len(doc.Content.UserStories),
			FileSizeBytes:  len(pdf),
		},
		Errors:   []string{},
		Warnings: warnings,
	}

	// Best-effort page count; the report never fails over it.
	if pages, ok := pdfPageCount(pdf); ok {
		report.Statistics.TotalPages = &pages
	}

	return report
}

// Page-tree scan patterns. The root Pages object carries the total count;
// /Count may appear on either side of /Type within the dictionary.
var (
	pagesCountAfter  = regexp.MustCompile(`(?s)/Type\s*/Pages.{0,256}?/Count\s+(\d+)`)
	pagesCountBefore = regexp.MustCompile(`(?s)/Count\s+(\d+).{0,256}?/Type\s*/Pages`)
)

// pdfPageCount scans the PDF page tree for the document page count.
// Returns false when the structure is compressed or otherwise unreadable;
// callers treat that as "unknown", never as a failure.
func pdfPageCount(pdf []byte) (int, bool) {
	best := 0
	for _, re := range []*regexp.Regexp{pagesCountAfter, pagesCountBefore} {
		for _, m := range re.FindAllSubmatch(pdf, -1) {
			if n, err := strconv.Atoi(string(m[1])); err == nil && n > best {
				best = n
			}
		}
	}
	return best, best > 0
}
