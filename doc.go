// Package livedoc turns a canonical user-story JSON document into a styled
// PDF report.
//
// The pipeline is strictly sequential: the input file is parsed and validated
// into a CanonicalDocument, bound to an HTML template pack (built-in or
// user-supplied, resolved per file), rendered to PDF through headless Chrome,
// and summarized in a machine-readable report. Any failure aborts the run;
// no partial artifact is ever left at the configured output paths.
//
// Basic usage:
//
//	gen := livedoc.NewGenerator()
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, livedoc.Inputs{
//		InputPath:  "pdf_ready.json",
//		OutputPath: "docs/report.pdf",
//	})
package livedoc
