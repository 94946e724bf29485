package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: livedoc [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a styled PDF report from a canonical user stories JSON file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Path to pdf_ready.json (alternative to --input)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -i, --input <path>         Path to the canonical user stories JSON")
	fmt.Fprintln(w, "  -o, --output <path>        Output PDF path (default: output.pdf)")
	fmt.Fprintln(w, "      --template-dir <path>  Custom template pack directory")
	fmt.Fprintln(w, "      --debug-html[=bool]    Also write the rendered HTML next to the PDF")
	fmt.Fprintln(w, "  -v, --verbose[=bool]       Progress output on stderr")
	fmt.Fprintln(w, "  -c, --config <path>        Config file path (YAML)")
	fmt.Fprintln(w, "  -t, --timeout <dur>        PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --version              Show version information")
	fmt.Fprintln(w, "  -h, --help                 Show this message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  INPUT_PDF_READY_JSON   Same as --input")
	fmt.Fprintln(w, "  INPUT_OUTPUT_PATH      Same as --output")
	fmt.Fprintln(w, "  INPUT_TEMPLATE_DIR     Same as --template-dir")
	fmt.Fprintln(w, "  INPUT_DEBUG_HTML       Same as --debug-html")
	fmt.Fprintln(w, "  INPUT_VERBOSE          Same as --verbose")
	fmt.Fprintln(w, "  RUNNER_DEBUG=1         Enable verbose output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  Success")
	fmt.Fprintln(w, "  1  Invalid input (file not found, invalid JSON, bad flags)")
	fmt.Fprintln(w, "  2  Schema validation failure")
	fmt.Fprintln(w, "  3  Template error")
	fmt.Fprintln(w, "  4  Rendering failure (HTML or PDF)")
	fmt.Fprintln(w, "  5  File write error")
}
