package assets

import (
	"embed"
	"fmt"
)

//go:embed templates styles
var builtin embed.FS

// EmbeddedLoader loads pack files from the embedded filesystem.
// Implements Loader.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load returns an embedded pack file by its relative name.
func (e *EmbeddedLoader) Load(name string) (string, error) {
	if err := ValidatePackPath(name); err != nil {
		return "", err
	}

	content, err := builtin.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}
	return string(content), nil
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
