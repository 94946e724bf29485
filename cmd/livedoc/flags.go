package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the livedoc command. Boolean inputs are kept
// as strings so --debug-html=yes and INPUT_DEBUG_HTML=yes parse the same way;
// an empty string means "not set" and preserves config/env precedence.
type cliFlags struct {
	input       string
	output      string
	templateDir string
	debugHTML   string
	verbose     string
	config      string
	timeout     string
	version     bool
	help        bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("livedoc", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.input, "input", "i", "", "path to the canonical user stories JSON")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default output.pdf)")
	fs.StringVar(&f.templateDir, "template-dir", "", "custom template pack directory")
	fs.StringVar(&f.debugHTML, "debug-html", "", "also write the rendered HTML (true/false/1/0/yes/no)")
	fs.StringVarP(&f.verbose, "verbose", "v", "", "progress output on stderr (true/false/1/0/yes/no)")
	fs.StringVarP(&f.config, "config", "c", "", "config file path (YAML)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show usage")

	// Allow bare --debug-html and --verbose without a value.
	fs.Lookup("debug-html").NoOptDefVal = "true"
	fs.Lookup("verbose").NoOptDefVal = "true"

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
