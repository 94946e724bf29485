package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Resolver combines custom and embedded loaders with per-file fallback.
// When a custom directory is configured it is tried first; files it doesn't
// carry fall back to the built-in pack independently of each other.
type Resolver struct {
	custom   *FilesystemLoader // nil if no custom directory configured
	embedded Loader
}

// NewResolver creates a Resolver. If customDir is empty only the built-in
// pack is used. Returns an error if customDir is set but invalid.
func NewResolver(customDir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customDir != "" {
		fsLoader, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// Load returns the content of a pack file and whether it came from the
// custom directory.
func (r *Resolver) Load(name string) (content string, fromCustom bool, err error) {
	if r.custom == nil {
		content, err = r.embedded.Load(name)
		return content, false, err
	}

	content, err = r.custom.Load(name)
	if err == nil {
		return content, true, nil
	}

	// Only fall back for "not found"; validation and I/O errors surface.
	if !errors.Is(err, ErrAssetNotFound) {
		return "", false, err
	}

	content, err = r.embedded.Load(name)
	return content, false, err
}

// HasCustom returns true if a custom directory is configured.
func (r *Resolver) HasCustom() bool {
	return r.custom != nil
}

// CustomDir returns the resolved custom directory, or "" when none is set.
func (r *Resolver) CustomDir() string {
	if r.custom == nil {
		return ""
	}
	return r.custom.BasePath()
}

// BaseDir returns the directory against which relative asset URLs in the
// rendered HTML resolve, plus a cleanup function. With a custom directory
// that directory is used as-is (extra fonts and images it carries stay
// reachable). Otherwise the built-in pack is materialized into a temporary
// directory.
func (r *Resolver) BaseDir() (dir string, cleanup func(), err error) {
	if r.custom != nil {
		return r.custom.BasePath(), func() {}, nil
	}

	tmpDir, err := os.MkdirTemp("", "livedoc-pack-")
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrStage, err)
	}
	cleanup = func() { _ = os.RemoveAll(tmpDir) }

	for _, name := range PackFiles {
		content, _, err := r.Load(name)
		if err != nil {
			cleanup()
			return "", nil, fmt.Errorf("%w: %v", ErrStage, err)
		}
		target := filepath.Join(tmpDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("%w: %v", ErrStage, err)
		}
		if err := os.WriteFile(target, []byte(content), 0o600); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("%w: %v", ErrStage, err)
		}
	}

	return tmpDir, cleanup, nil
}
