package livedoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Field length limits from canonical schema v1.0.
const (
	maxTitleLength      = 200
	maxVersionLength    = 50
	maxStoryIDLength    = 200
	maxStoryTitleLength = 500
)

// guidance maps each violation kind to exactly one fixed instruction string.
// This mapping is a test-facing contract; changing an entry is a breaking
// change.
var guidance = map[ViolationKind]string{
	KindMissingField:     "Ensure JSON follows canonical schema v1.0.",
	KindWrongType:        "Check the field type against canonical schema v1.0.",
	KindWrongVersion:     "Regenerate the input with a generator that emits schema v1.0.",
	KindEmptyValue:       "Provide a non-empty value.",
	KindValueTooLong:     "Shorten the value to the schema limit.",
	KindEmptyArray:       "Provide at least one element.",
	KindNegativeNumber:   "Use an integer greater than or equal to zero.",
	KindInvalidTimestamp: "Use ISO 8601 format: YYYY-MM-DDTHH:MM:SSZ.",
	KindTimestampOrder:   "Ensure 'updated' is not earlier than 'created'.",
	KindInvalidURL:       "Use format: http:// or https://.",
	KindDuplicateID:      "User story ids must be unique across the document.",
	KindSummaryMismatch:  "Ensure total_items equals included_items plus excluded_items.",
	KindUnknownSection:   "Remove unknown section keys.",
}

// guidanceFor returns the fixed instruction string for a violation kind.
func guidanceFor(kind ViolationKind) string {
	if g, ok := guidance[kind]; ok {
		return g
	}
	return "Ensure JSON follows canonical schema v1.0."
}

// urlPattern matches the http/https URL shape required for story links.
var urlPattern = regexp.MustCompile(`^https?://\S+$`)

// Validate parses raw JSON bytes and checks them against canonical schema
// v1.0, returning a fully typed CanonicalDocument. Validation is fail-fast:
// the first violation wins, checked in field-declaration order. Unparseable
// JSON is an invalid-input error (exit 1), not a schema error (exit 2).
func Validate(raw []byte) (*CanonicalDocument, error) {
	var parsed json.RawMessage
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, invalidInputError("File contains invalid JSON: %v. Ensure the file is valid JSON.", err)
	}

	root, serr := decodeObject(parsed, "root")
	if serr != nil {
		return nil, serr
	}

	doc := &CanonicalDocument{}

	// schema_version
	versionRaw, serr := requireField(root, "schema_version", "")
	if serr != nil {
		return nil, serr
	}
	version, serr := decodeString(versionRaw, "schema_version")
	if serr != nil {
		return nil, serr
	}
	if version != SchemaVersion {
		return nil, &SchemaError{
			FieldPath: "schema_version",
			Kind:      KindWrongVersion,
			Detail:    fmt.Sprintf("Invalid schema_version: expected '%s', got '%s'", SchemaVersion, version),
		}
	}
	doc.SchemaVersion = version

	// meta
	metaRaw, serr := requireField(root, "meta", "")
	if serr != nil {
		return nil, serr
	}
	meta, serr := validateMeta(metaRaw)
	if serr != nil {
		return nil, serr
	}
	doc.Meta = *meta

	// content
	contentRaw, serr := requireField(root, "content", "")
	if serr != nil {
		return nil, serr
	}
	content, serr := validateContent(contentRaw)
	if serr != nil {
		return nil, serr
	}
	doc.Content = *content

	return doc, nil
}

// validateMeta checks meta fields in declaration order.
func validateMeta(raw json.RawMessage) (*Metadata, *SchemaError) {
	obj, serr := decodeObject(raw, "meta")
	if serr != nil {
		return nil, serr
	}

	meta := &Metadata{}

	titleRaw, serr := requireField(obj, "document_title", "meta")
	if serr != nil {
		return nil, serr
	}
	meta.DocumentTitle, serr = decodeBoundedString(titleRaw, "meta.document_title", maxTitleLength)
	if serr != nil {
		return nil, serr
	}

	versionRaw, serr := requireField(obj, "document_version", "meta")
	if serr != nil {
		return nil, serr
	}
	meta.DocumentVersion, serr = decodeBoundedString(versionRaw, "meta.document_version", maxVersionLength)
	if serr != nil {
		return nil, serr
	}

	generatedRaw, serr := requireField(obj, "generated_at", "meta")
	if serr != nil {
		return nil, serr
	}
	meta.GeneratedAt, _, serr = decodeTimestamp(generatedRaw, "meta.generated_at")
	if serr != nil {
		return nil, serr
	}

	sourceRaw, serr := requireField(obj, "source_set", "meta")
	if serr != nil {
		return nil, serr
	}
	meta.SourceSet, serr = decodeStringSet(sourceRaw, "meta.source_set")
	if serr != nil {
		return nil, serr
	}

	summaryRaw, serr := requireField(obj, "selection_summary", "meta")
	if serr != nil {
		return nil, serr
	}
	summary, serr := validateSelectionSummary(summaryRaw)
	if serr != nil {
		return nil, serr
	}
	meta.SelectionSummary = *summary

	if rcRaw, ok := obj["run_context"]; ok && !isNull(rcRaw) {
		rc, serr := validateRunContext(rcRaw)
		if serr != nil {
			return nil, serr
		}
		meta.RunContext = rc
	}

	return meta, nil
}

// validateSelectionSummary checks the three counters and the sum invariant.
func validateSelectionSummary(raw json.RawMessage) (*SelectionSummary, *SchemaError) {
	const path = "meta.selection_summary"

	obj, serr := decodeObject(raw, path)
	if serr != nil {
		return nil, serr
	}

	summary := &SelectionSummary{}
	fields := []struct {
		key  string
		dest *int
	}{
		{"total_items", &summary.TotalItems},
		{"included_items", &summary.IncludedItems},
		{"excluded_items", &summary.ExcludedItems},
	}
	for _, f := range fields {
		fieldRaw, serr := requireField(obj, f.key, path)
		if serr != nil {
			return nil, serr
		}
		n, serr := decodeCount(fieldRaw, path+"."+f.key)
		if serr != nil {
			return nil, serr
		}
		*f.dest = n
	}

	if summary.TotalItems != summary.IncludedItems+summary.ExcludedItems {
		return nil, &SchemaError{
			FieldPath: path,
			Kind:      KindSummaryMismatch,
			Detail: fmt.Sprintf("'%s' total_items (%d) does not equal included_items (%d) + excluded_items (%d)",
				path, summary.TotalItems, summary.IncludedItems, summary.ExcludedItems),
		}
	}

	return summary, nil
}

// validateRunContext checks the optional CI provenance block.
func validateRunContext(raw json.RawMessage) (*RunContext, *SchemaError) {
	const path = "meta.run_context"

	obj, serr := decodeObject(raw, path)
	if serr != nil {
		return nil, serr
	}

	rc := &RunContext{}
	fields := []struct {
		key  string
		dest *string
	}{
		{"ci_run_id", &rc.CIRunID},
		{"triggered_by", &rc.TriggeredBy},
		{"branch", &rc.Branch},
		{"commit_sha", &rc.CommitSHA},
	}
	for _, f := range fields {
		fieldRaw, ok := obj[f.key]
		if !ok || isNull(fieldRaw) {
			continue
		}
		s, serr := decodeString(fieldRaw, path+"."+f.key)
		if serr != nil {
			return nil, serr
		}
		*f.dest = s
	}

	return rc, nil
}

// validateContent checks content.user_stories and the free-form passthrough
// objects.
func validateContent(raw json.RawMessage) (*Content, *SchemaError) {
	obj, serr := decodeObject(raw, "content")
	if serr != nil {
		return nil, serr
	}

	content := &Content{}

	storiesRaw, serr := requireField(obj, "user_stories", "content")
	if serr != nil {
		return nil, serr
	}
	var stories []json.RawMessage
	if err := json.Unmarshal(storiesRaw, &stories); err != nil {
		return nil, wrongType("content.user_stories", "array", storiesRaw)
	}

	content.UserStories = make([]UserStory, 0, len(stories))
	seen := make(map[string]bool, len(stories))
	for i, storyRaw := range stories {
		story, serr := validateUserStory(storyRaw, i)
		if serr != nil {
			return nil, serr
		}
		if seen[story.ID] {
			path := fmt.Sprintf("content.user_stories.%d.id", i)
			return nil, &SchemaError{
				FieldPath: path,
				Kind:      KindDuplicateID,
				Detail:    fmt.Sprintf("Duplicate user story id '%s' at %s", story.ID, path),
			}
		}
		seen[story.ID] = true
		content.UserStories = append(content.UserStories, *story)
	}

	// Free-form diagnostic objects: validated only as being objects, then
	// passed through untouched.
	if overviewRaw, ok := obj["overview"]; ok && !isNull(overviewRaw) {
		if err := json.Unmarshal(overviewRaw, &content.Overview); err != nil {
			return nil, wrongType("content.overview", "object", overviewRaw)
		}
	}
	if matrixRaw, ok := obj["coverage_matrix"]; ok && !isNull(matrixRaw) {
		if err := json.Unmarshal(matrixRaw, &content.CoverageMatrix); err != nil {
			return nil, wrongType("content.coverage_matrix", "object", matrixRaw)
		}
	}

	return content, nil
}

// validateUserStory checks one story's required fields in declaration order.
func validateUserStory(raw json.RawMessage, index int) (*UserStory, *SchemaError) {
	path := fmt.Sprintf("content.user_stories.%d", index)

	obj, serr := decodeObject(raw, path)
	if serr != nil {
		return nil, serr
	}

	story := &UserStory{}

	idRaw, serr := requireField(obj, "id", path)
	if serr != nil {
		return nil, serr
	}
	story.ID, serr = decodeBoundedString(idRaw, path+".id", maxStoryIDLength)
	if serr != nil {
		return nil, serr
	}

	titleRaw, serr := requireField(obj, "title", path)
	if serr != nil {
		return nil, serr
	}
	story.Title, serr = decodeBoundedString(titleRaw, path+".title", maxStoryTitleLength)
	if serr != nil {
		return nil, serr
	}

	stateRaw, serr := requireField(obj, "state", path)
	if serr != nil {
		return nil, serr
	}
	story.State, serr = decodeNonEmptyString(stateRaw, path+".state")
	if serr != nil {
		return nil, serr
	}

	tagsRaw, serr := requireField(obj, "tags", path)
	if serr != nil {
		return nil, serr
	}
	if err := json.Unmarshal(tagsRaw, &story.Tags); err != nil {
		return nil, wrongType(path+".tags", "array of strings", tagsRaw)
	}
	if story.Tags == nil {
		story.Tags = []string{}
	}

	urlRaw, serr := requireField(obj, "url", path)
	if serr != nil {
		return nil, serr
	}
	url, serr := decodeString(urlRaw, path+".url")
	if serr != nil {
		return nil, serr
	}
	if !urlPattern.MatchString(url) {
		return nil, &SchemaError{
			FieldPath: path + ".url",
			Kind:      KindInvalidURL,
			Detail:    fmt.Sprintf("'%s.url' is not a valid URL", path),
		}
	}
	story.URL = url

	tsRaw, serr := requireField(obj, "timestamps", path)
	if serr != nil {
		return nil, serr
	}
	ts, serr := validateTimestamps(tsRaw, path)
	if serr != nil {
		return nil, serr
	}
	story.Timestamps = *ts

	sectionsRaw, serr := requireField(obj, "sections", path)
	if serr != nil {
		return nil, serr
	}
	sections, serr := validateSections(sectionsRaw, path)
	if serr != nil {
		return nil, serr
	}
	story.Sections = *sections

	return story, nil
}

// validateTimestamps checks created/updated presence, format, and ordering.
func validateTimestamps(raw json.RawMessage, storyPath string) (*Timestamps, *SchemaError) {
	path := storyPath + ".timestamps"

	obj, serr := decodeObject(raw, path)
	if serr != nil {
		return nil, serr
	}

	createdRaw, serr := requireField(obj, "created", path)
	if serr != nil {
		return nil, serr
	}
	created, createdAt, serr := decodeTimestamp(createdRaw, path+".created")
	if serr != nil {
		return nil, serr
	}

	updatedRaw, serr := requireField(obj, "updated", path)
	if serr != nil {
		return nil, serr
	}
	updated, updatedAt, serr := decodeTimestamp(updatedRaw, path+".updated")
	if serr != nil {
		return nil, serr
	}

	if updatedAt.Before(createdAt) {
		return nil, &SchemaError{
			FieldPath: path,
			Kind:      KindTimestampOrder,
			Detail:    fmt.Sprintf("'%s' updated (%s) is earlier than created (%s)", path, updated, created),
		}
	}

	return &Timestamps{Created: created, Updated: updated}, nil
}

// validateSections checks the fixed key set; values must be string or null.
// Unknown keys are reported in lexical order so the first-failure message is
// deterministic.
func validateSections(raw json.RawMessage, storyPath string) (*Sections, *SchemaError) {
	path := storyPath + ".sections"

	obj, serr := decodeObject(raw, path)
	if serr != nil {
		return nil, serr
	}

	known := map[string]bool{}
	for _, key := range SectionKeys {
		known[key] = true
	}

	var unknown []string
	for key := range obj {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &SchemaError{
			FieldPath: path + "." + unknown[0],
			Kind:      KindUnknownSection,
			Detail:    fmt.Sprintf("'%s' contains unknown section key '%s'", path, unknown[0]),
		}
	}

	sections := &Sections{}
	dests := map[string]*string{
		"description":         &sections.Description,
		"business_value":      &sections.BusinessValue,
		"preconditions":       &sections.Preconditions,
		"acceptance_criteria": &sections.AcceptanceCriteria,
		"user_guide":          &sections.UserGuide,
		"connections":         &sections.Connections,
		"last_edited":         &sections.LastEdited,
	}
	for _, key := range SectionKeys {
		valueRaw, ok := obj[key]
		if !ok || isNull(valueRaw) {
			continue
		}
		s, serr := decodeString(valueRaw, path+"."+key)
		if serr != nil {
			return nil, serr
		}
		*dests[key] = s
	}

	return sections, nil
}

// requireField returns the raw value for key or a missing-field violation.
// parentPath is "" for root-level fields, which omits the "at" suffix.
func requireField(obj map[string]json.RawMessage, key, parentPath string) (json.RawMessage, *SchemaError) {
	raw, ok := obj[key]
	if ok && !isNull(raw) {
		return raw, nil
	}

	fieldPath := key
	detail := fmt.Sprintf("Missing required field '%s'", key)
	if parentPath != "" {
		fieldPath = parentPath + "." + key
		detail = fmt.Sprintf("Missing required field '%s' at %s", key, parentPath)
	}
	return nil, &SchemaError{FieldPath: fieldPath, Kind: KindMissingField, Detail: detail}
}

// decodeObject unmarshals raw into a key-to-raw map or reports a type error.
func decodeObject(raw json.RawMessage, path string) (map[string]json.RawMessage, *SchemaError) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, wrongType(path, "object", raw)
	}
	return obj, nil
}

// decodeString unmarshals raw into a string or reports a type error.
func decodeString(raw json.RawMessage, path string) (string, *SchemaError) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", wrongType(path, "string", raw)
	}
	return s, nil
}

// decodeNonEmptyString requires a string that is non-empty after trimming.
func decodeNonEmptyString(raw json.RawMessage, path string) (string, *SchemaError) {
	s, serr := decodeString(raw, path)
	if serr != nil {
		return "", serr
	}
	if strings.TrimSpace(s) == "" {
		return "", &SchemaError{
			FieldPath: path,
			Kind:      KindEmptyValue,
			Detail:    fmt.Sprintf("'%s' must be a non-empty string", path),
		}
	}
	return s, nil
}

// decodeBoundedString requires a non-empty string no longer than max runes
// after trimming.
func decodeBoundedString(raw json.RawMessage, path string, max int) (string, *SchemaError) {
	s, serr := decodeNonEmptyString(raw, path)
	if serr != nil {
		return "", serr
	}
	trimmed := strings.TrimSpace(s)
	if len([]rune(trimmed)) > max {
		return "", &SchemaError{
			FieldPath: path,
			Kind:      KindValueTooLong,
			Detail:    fmt.Sprintf("'%s' exceeds maximum length of %d characters", path, max),
		}
	}
	return trimmed, nil
}

// decodeStringSet requires a non-empty array of non-empty strings.
func decodeStringSet(raw json.RawMessage, path string) ([]string, *SchemaError) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, wrongType(path, "array", raw)
	}
	if len(items) == 0 {
		return nil, &SchemaError{
			FieldPath: path,
			Kind:      KindEmptyArray,
			Detail:    fmt.Sprintf("'%s' must be a non-empty array", path),
		}
	}

	out := make([]string, len(items))
	for i, item := range items {
		s, serr := decodeNonEmptyString(item, fmt.Sprintf("%s.%d", path, i))
		if serr != nil {
			return nil, serr
		}
		out[i] = s
	}
	return out, nil
}

// decodeCount requires a non-negative integer.
func decodeCount(raw json.RawMessage, path string) (int, *SchemaError) {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return 0, wrongType(path, "integer", raw)
	}
	v, err := n.Int64()
	if err != nil {
		return 0, wrongType(path, "integer", raw)
	}
	if v < 0 {
		return 0, &SchemaError{
			FieldPath: path,
			Kind:      KindNegativeNumber,
			Detail:    fmt.Sprintf("'%s' must be >= 0, got %d", path, v),
		}
	}
	return int(v), nil
}

// decodeTimestamp requires an ISO-8601 timestamp with timezone. Returns both
// the original string (kept for rendering) and the parsed time (for ordering
// checks).
func decodeTimestamp(raw json.RawMessage, path string) (string, time.Time, *SchemaError) {
	s, serr := decodeString(raw, path)
	if serr != nil {
		return "", time.Time{}, serr
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", time.Time{}, &SchemaError{
			FieldPath: path,
			Kind:      KindInvalidTimestamp,
			Detail:    fmt.Sprintf("'%s' is not a valid ISO 8601 timestamp", path),
		}
	}
	return s, t, nil
}

// wrongType builds a type violation naming the expected and actual JSON types.
func wrongType(path, expected string, raw json.RawMessage) *SchemaError {
	return &SchemaError{
		FieldPath: path,
		Kind:      KindWrongType,
		Detail:    fmt.Sprintf("'%s' must be of type %s, got %s", path, expected, jsonTypeName(raw)),
	}
}

// jsonTypeName reports the JSON type of a raw value from its first byte.
func jsonTypeName(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}
	switch trimmed[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

// isNull reports whether raw is the JSON null literal.
func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
