package main

import (
	"context"
	"io"
	"os"
	"time"

	livedoc "github.com/livedoc/go-livedoc"
)

// DocumentGenerator is the interface for the generation pipeline.
type DocumentGenerator interface {
	Generate(ctx context.Context, in livedoc.Inputs) (*livedoc.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ DocumentGenerator = (*livedoc.Generator)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the generator constructor.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewGenerator func(opts ...livedoc.Option) DocumentGenerator
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewGenerator: func(opts ...livedoc.Option) DocumentGenerator {
			return livedoc.NewGenerator(opts...)
		},
	}
}
