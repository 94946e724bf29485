package assets

import (
	"errors"
	"fmt"
)

// Sentinel errors for pack operations.
var (
	// ErrAssetNotFound indicates the requested pack file does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidAssetPath indicates a pack file path outside the known set
	// or containing traversal sequences.
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrInvalidBasePath indicates the custom template directory is not a
	// valid, readable directory.
	ErrInvalidBasePath = errors.New("invalid template directory")

	// ErrBaseDirNotFound indicates the custom template directory does not
	// exist at all. Wraps ErrInvalidBasePath; callers that want to fall
	// back to the built-in pack check for this sentinel specifically.
	ErrBaseDirNotFound = fmt.Errorf("%w: directory does not exist", ErrInvalidBasePath)

	// ErrAssetRead indicates an I/O error while reading a pack file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to reach files outside the
	// custom template directory.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrStage indicates the pack could not be materialized to disk.
	ErrStage = errors.New("failed to stage template pack")
)
