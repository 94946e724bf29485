package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	livedoc "github.com/livedoc/go-livedoc"
	"github.com/livedoc/go-livedoc/internal/config"
)

// run resolves inputs and drives the pipeline. It returns an error the
// caller maps to an exit code; all user-facing output goes through env.
func run(args []string, env *Environment) error {
	flags, positional, err := parseFlags(args)
	if err != nil {
		return err
	}

	if flags.help {
		printUsage(env.Stdout)
		return nil
	}
	if flags.version {
		fmt.Fprintf(env.Stdout, "livedoc %s\n", Version)
		return nil
	}

	in, err := resolveInputs(flags, positional)
	if err != nil {
		return err
	}

	var opts []livedoc.Option
	if in.Timeout != "" {
		d, err := time.ParseDuration(in.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: invalid timeout %q (expected Go duration, e.g. 30s)", config.ErrConfigParse, in.Timeout)
		}
		opts = append(opts, livedoc.WithTimeout(d))
	}

	gen := env.NewGenerator(opts...)
	defer func() { _ = gen.Close() }()

	stepf(env, in.Verbose, "Validating %s", in.PdfReadyJSON)
	if in.TemplateDir != "" {
		stepf(env, in.Verbose, "Using custom templates from %s", in.TemplateDir)
	}
	stepf(env, in.Verbose, "Generating %s", in.OutputPath)

	start := env.Now()
	result, err := gen.Generate(context.Background(), livedoc.Inputs{
		InputPath:   in.PdfReadyJSON,
		OutputPath:  in.OutputPath,
		TemplateDir: in.TemplateDir,
		DebugHTML:   in.DebugHTML,
	})
	if err != nil {
		return err
	}

	stepf(env, in.Verbose, "Done in %s", env.Now().Sub(start).Round(time.Millisecond))
	for _, w := range result.Report.Warnings {
		fmt.Fprintf(env.Stderr, "warning: %s (%s)\n", w.Message, w.Context)
	}

	if in.Verbose {
		successColor.Fprintf(env.Stderr, "Created %s\n", result.PDFPath)
	}

	// Machine-readable output contract: one key=value line per artifact.
	fmt.Fprintf(env.Stdout, "pdf-path=%s\n", result.PDFPath)
	if result.HTMLPath != "" {
		fmt.Fprintf(env.Stdout, "html-path=%s\n", result.HTMLPath)
	}
	fmt.Fprintf(env.Stdout, "report-path=%s\n", result.ReportPath)

	return nil
}

// resolveInputs merges flags, environment variables, config file, and
// defaults, in that precedence order.
func resolveInputs(flags *cliFlags, positional []string) (*config.Inputs, error) {
	in := config.Default()
	if flags.config != "" {
		loaded, err := config.LoadFile(flags.config)
		if err != nil {
			return nil, err
		}
		in = loaded
	}

	// Environment overrides the config file; flags below override both.
	if err := in.ApplyEnv(); err != nil {
		return nil, err
	}

	if flags.input == "" && len(positional) > 0 {
		flags.input = positional[0]
	}
	if flags.input != "" {
		in.PdfReadyJSON = flags.input
	}
	if flags.output != "" {
		in.OutputPath = flags.output
	}
	if flags.templateDir != "" {
		in.TemplateDir = flags.templateDir
	}
	if flags.timeout != "" {
		in.Timeout = flags.timeout
	}
	if flags.debugHTML != "" {
		b, err := config.ParseBool(flags.debugHTML)
		if err != nil {
			return nil, fmt.Errorf("--debug-html: %w", err)
		}
		in.DebugHTML = b
	}
	if flags.verbose != "" {
		b, err := config.ParseBool(flags.verbose)
		if err != nil {
			return nil, fmt.Errorf("--verbose: %w", err)
		}
		in.Verbose = b
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}

var (
	stepColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
)

// stepf prints a progress line to stderr when verbose is enabled.
func stepf(env *Environment, verbose bool, format string, args ...any) {
	if !verbose {
		return
	}
	stepColor.Fprint(env.Stderr, "==> ")
	fmt.Fprintf(env.Stderr, format+"\n", args...)
}
