// Package assets provides the template pack used to render documents:
// HTML templates and the stylesheet, loadable from embedded files or a
// user-supplied directory.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in pack)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// Resolution is per file, not all-or-nothing: a custom directory that carries
// only one template overrides that file while every other pack file falls
// back to the built-in copy.
//
// # Pack layout
//
//	{dir}/
//	├── templates/
//	│   ├── main.html.tmpl        # document shell
//	│   └── user_story.html.tmpl  # one story card
//	└── styles/
//	    └── livedoc.css           # stylesheet, inlined at render time
//
// # Security
//
// Pack file paths are validated and resolved paths are verified to stay
// within the custom base directory, with symlink resolution.
package assets
