package livedoc

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/livedoc/go-livedoc/internal/assets"
	"github.com/livedoc/go-livedoc/internal/dateutil"
)

// templateFuncs is the namespace available inside pack templates, on top of
// the validated document fields.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// markdown output is safe to mark as HTML: raw markup inside the
		// Markdown source is escaped by the converter, never passed through.
		"markdown": func(text string) template.HTML {
			return template.HTML(MarkdownToHTML(text))
		},
		"formatDatetime": dateutil.FormatDisplay,
	}
}

// renderContext is the root object bound to the main template.
type renderContext struct {
	Doc        *CanonicalDocument
	Stylesheet template.CSS
}

// Renderer binds validated documents to a template pack. The pack is
// resolved per file: a custom directory overrides individual files, the
// built-in pack fills the gaps.
type Renderer struct {
	resolver   *assets.Resolver
	tmpl       *template.Template
	stylesheet template.CSS
	pack       TemplatePack
	warnings   []Warning
}

// NewRenderer loads and parses the template pack. templateDir may be empty
// (built-in pack only). A templateDir that does not exist is treated as "no
// custom pack": the built-in templates are used and a warning is emitted
// with the rendering warnings. Any other unusable directory, and every
// parse failure, surfaces as a template error (exit 3).
func NewRenderer(templateDir string) (*Renderer, error) {
	r := &Renderer{}

	resolver, err := assets.NewResolver(templateDir)
	if err != nil {
		if !errors.Is(err, assets.ErrBaseDirNotFound) {
			return nil, &pipelineError{
				category: ErrTemplate,
				msg:      fmt.Sprintf("Template directory '%s' is not usable: %v. Check template_dir path.", templateDir, err),
			}
		}
		r.warnings = append(r.warnings, Warning{
			Level:   WarningLevel,
			Message: fmt.Sprintf("Custom template directory '%s' does not exist; using built-in templates", templateDir),
			Context: "template_dir",
		})
		resolver, err = assets.NewResolver("")
		if err != nil {
			return nil, &pipelineError{
				category: ErrTemplate,
				msg:      fmt.Sprintf("Loading built-in templates failed: %v. Reinstall the binary.", err),
			}
		}
	}

	r.resolver = resolver

	mainContent, _, err := resolver.Load(assets.TemplateMain)
	if err != nil {
		return nil, templateLoadError(assets.TemplateMain, err)
	}
	storyContent, _, err := resolver.Load(assets.TemplateUserStory)
	if err != nil {
		return nil, templateLoadError(assets.TemplateUserStory, err)
	}
	css, _, err := resolver.Load(assets.Stylesheet)
	if err != nil {
		return nil, templateLoadError(assets.Stylesheet, err)
	}

	tmpl := template.New(assets.TemplateMain).Funcs(templateFuncs())
	if _, err := tmpl.Parse(mainContent); err != nil {
		return nil, newTemplateError(assets.TemplateMain, err)
	}
	if _, err := tmpl.New(assets.TemplateUserStory).Parse(storyContent); err != nil {
		return nil, newTemplateError(assets.TemplateUserStory, err)
	}

	r.tmpl = tmpl
	r.stylesheet = template.CSS(css) // #nosec G203 -- stylesheet comes from the resolved pack, not user story content
	r.pack = TemplatePack{Type: PackBuiltIn}
	if resolver.HasCustom() {
		r.pack = TemplatePack{Type: PackCustom, Path: resolver.CustomDir()}
	}
	return r, nil
}

// Pack identifies the resolved template pack for reporting.
func (r *Renderer) Pack() TemplatePack {
	return r.pack
}

// BaseDir returns the directory relative asset URLs resolve against, plus a
// cleanup function. See assets.Resolver.BaseDir.
func (r *Renderer) BaseDir() (string, func(), error) {
	return r.resolver.BaseDir()
}

// Render binds the validated document to the pack and returns the HTML
// document plus rendering warnings. Rendering the same document twice
// produces byte-identical output.
func (r *Renderer) Render(doc *CanonicalDocument) (string, []Warning, error) {
	var buf bytes.Buffer
	ctx := renderContext{Doc: doc, Stylesheet: r.stylesheet}
	if err := r.tmpl.ExecuteTemplate(&buf, assets.TemplateMain, ctx); err != nil {
		return "", nil, newTemplateError(assets.TemplateMain, err)
	}

	warnings := append([]Warning(nil), r.warnings...)
	warnings = append(warnings, sectionWarnings(doc)...)
	return buf.String(), warnings, nil
}

// sectionWarnings emits one warning per user story whose acceptance_criteria
// section is absent or empty. Other optional sections are silent; only this
// one is warning-worthy per the report contract.
func sectionWarnings(doc *CanonicalDocument) []Warning {
	var warnings []Warning
	for i, story := range doc.Content.UserStories {
		if strings.TrimSpace(story.Sections.AcceptanceCriteria) == "" {
			warnings = append(warnings, Warning{
				Level:   WarningLevel,
				Message: fmt.Sprintf("User story '%s' has no acceptance_criteria section", story.ID),
				Context: fmt.Sprintf("user_stories[%d]", i),
			})
		}
	}
	return warnings
}

// templateLoadError classifies a pack load failure.
func templateLoadError(file string, err error) error {
	if errors.Is(err, assets.ErrAssetNotFound) {
		return &TemplateError{File: file}
	}
	return &TemplateError{File: file, Msg: err.Error()}
}

// tmplErrLocation extracts "…:<line>: <msg>" from html/template errors.
var tmplErrLocation = regexp.MustCompile(`:(\d+):\s*(.*)$`)

// newTemplateError converts an html/template parse or execution error into a
// TemplateError, extracting the line number when the engine reports one.
func newTemplateError(file string, err error) *TemplateError {
	msg := err.Error()
	if m := tmplErrLocation.FindStringSubmatch(msg); m != nil {
		if line, convErr := strconv.Atoi(m[1]); convErr == nil {
			return &TemplateError{File: file, Line: line, Msg: m[2]}
		}
	}
	return &TemplateError{File: file, Msg: msg}
}
