package assets

import (
	"fmt"
	"strings"
)

// Pack file names, relative to the pack root. These are the only names the
// loaders accept.
const (
	TemplateMain      = "templates/main.html.tmpl"
	TemplateUserStory = "templates/user_story.html.tmpl"
	Stylesheet        = "styles/livedoc.css"
)

// PackFiles lists every file of a complete pack, in resolution order.
var PackFiles = []string{TemplateMain, TemplateUserStory, Stylesheet}

// Loader defines the contract for loading one pack file by its relative name.
// Implementations may load from embedded assets, the filesystem, or both.
type Loader interface {
	// Load returns the content of the named pack file.
	// Returns ErrAssetNotFound if the file doesn't exist.
	// Returns ErrInvalidAssetPath if the name is not a known pack file.
	Load(name string) (string, error)
}

// ValidatePackPath checks that name is one of the known pack files and free
// of traversal sequences. Names are forward-slash relative paths.
func ValidatePackPath(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetPath)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "\\\x00") || strings.HasPrefix(name, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetPath, name)
	}
	for _, known := range PackFiles {
		if name == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q is not a pack file", ErrInvalidAssetPath, name)
}
