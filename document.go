package livedoc

// SchemaVersion is the only canonical schema version this release accepts.
// The schema meaning is immutable per version; a new version is a new constant.
const SchemaVersion = "1.0"

// SectionKeys is the fixed, ordered set of user-story section keys. Any other
// key inside "sections" is a schema violation.
var SectionKeys = []string{
	"description",
	"business_value",
	"preconditions",
	"acceptance_criteria",
	"user_guide",
	"connections",
	"last_edited",
}

// CanonicalDocument is the validated root of a pdf_ready.json input.
// It is constructed once per run by Validate and read-only afterwards.
type CanonicalDocument struct {
	SchemaVersion string   `json:"schema_version"`
	Meta          Metadata `json:"meta"`
	Content       Content  `json:"content"`
}

// Metadata describes the document as a whole.
type Metadata struct {
	DocumentTitle    string           `json:"document_title"`
	DocumentVersion  string           `json:"document_version"`
	GeneratedAt      string           `json:"generated_at"` // ISO-8601 with timezone
	SourceSet        []string         `json:"source_set"`
	SelectionSummary SelectionSummary `json:"selection_summary"`
	RunContext       *RunContext      `json:"run_context,omitempty"`
}

// SelectionSummary counts the items considered by the upstream producer.
// Invariant: TotalItems == IncludedItems + ExcludedItems.
type SelectionSummary struct {
	TotalItems    int `json:"total_items"`
	IncludedItems int `json:"included_items"`
	ExcludedItems int `json:"excluded_items"`
}

// RunContext carries optional CI provenance fields.
type RunContext struct {
	CIRunID     string `json:"ci_run_id,omitempty"`
	TriggeredBy string `json:"triggered_by,omitempty"`
	Branch      string `json:"branch,omitempty"`
	CommitSHA   string `json:"commit_sha,omitempty"`
}

// Content holds the document body.
type Content struct {
	UserStories []UserStory `json:"user_stories"`

	// Overview and CoverageMatrix are free-form diagnostic objects passed
	// through untouched; they are validated only as being objects.
	Overview       map[string]any `json:"overview,omitempty"`
	CoverageMatrix map[string]any `json:"coverage_matrix,omitempty"`
}

// UserStory is one documentation unit.
type UserStory struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	State      string     `json:"state"`
	Tags       []string   `json:"tags"`
	URL        string     `json:"url"`
	Timestamps Timestamps `json:"timestamps"`
	Sections   Sections   `json:"sections"`
}

// Timestamps records story lifecycle times. Invariant: Updated >= Created.
type Timestamps struct {
	Created string `json:"created"`
	Updated string `json:"updated"`
}

// Sections maps the fixed section keys to Markdown text. A null or absent
// section is the empty string.
type Sections struct {
	Description        string `json:"description,omitempty"`
	BusinessValue      string `json:"business_value,omitempty"`
	Preconditions      string `json:"preconditions,omitempty"`
	AcceptanceCriteria string `json:"acceptance_criteria,omitempty"`
	UserGuide          string `json:"user_guide,omitempty"`
	Connections        string `json:"connections,omitempty"`
	LastEdited         string `json:"last_edited,omitempty"`
}

// Warning levels used in reports.
const WarningLevel = "warning"

// Warning is one diagnostic collected during validation or rendering.
type Warning struct {
	Level   string `json:"level"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// TemplatePackType values for PdfReport.TemplatePack.
const (
	PackBuiltIn = "built-in"
	PackCustom  = "custom"
)

// TemplatePack identifies the template pack a report was rendered with.
type TemplatePack struct {
	Type string `json:"type"` // "built-in" or "custom"
	Path string `json:"path,omitempty"`
}

// Statistics summarizes the produced PDF.
type Statistics struct {
	UserStoryCount int  `json:"user_story_count"`
	TotalPages     *int `json:"total_pages,omitempty"` // best-effort, nil when unknown
	FileSizeBytes  int  `json:"file_size_bytes"`
}

// PdfReport is the machine-readable diagnostics document produced alongside
// the PDF. It is only ever written on full pipeline success, so Errors is
// always empty.
type PdfReport struct {
	SchemaVersion string       `json:"schema_version"`
	GeneratedAt   string       `json:"generated_at"`
	InputFile     string       `json:"input_file"`
	OutputFile    string       `json:"output_file"`
	TemplatePack  TemplatePack `json:"template_pack"`
	Statistics    Statistics   `json:"statistics"`
	Errors        []string     `json:"errors"`
	Warnings      []Warning    `json:"warnings"`
}
