// Package issue defines the rule-finding representation the engine emits:
// a severity, a rule name, a human message and one or more context lines
// carrying byte-offset spans. The renderer consumes this data; it never
// re-parses issue content.
package issue

// Severity classifies an Issue.
type Severity int

const (
	// Error is a blocking finding; one or more causes exit code 1.
	Error Severity = iota
	// Hint is a non-fatal finding, suppressible via --no-hints.
	Hint
)

// String renders the severity for display/logging.
func (s Severity) String() string {
	if s == Hint {
		return "Hint"
	}

	return "Error"
}

// SourceKind identifies which part of the commit/branch a ContextLine was
// rendered from.
type SourceKind int

const (
	// Subject is the commit subject line.
	Subject SourceKind = iota
	// Message is a commit body line.
	Message
	// BranchName is the branch name.
	BranchName
	// Diff is the diff/changeset summary.
	Diff
)

// SpanKind classifies a Span's visual treatment.
type SpanKind int

const (
	// Underline marks the offending text as-is.
	Underline SpanKind = iota
	// Addition marks suggested text to add.
	Addition
	// Removal marks text to remove.
	Removal
)

// Span is a byte-offset range within a ContextLine's Content, annotated
// with the kind of visual treatment and an optional note.
type Span struct {
	ByteStart        int
	ByteEndExclusive int
	Kind             SpanKind
	Annotation       string
}

// ContextLine is one line of rendered context (subject, body, branch name,
// or diff summary) plus the spans that pinpoint the issue within it.
type ContextLine struct {
	Source SourceKind
	// LineNumberInSource is 1-based, counted within Source (e.g. body line
	// 1 is the first body line, independent of the subject/blank
	// separator that precede it in a combined rendering).
	LineNumberInSource int
	Content            string
	Spans              []Span
}

// Rule is the stable name of a rule; also the string recognised by
// `lintje:disable <Rule>` directives.
type Rule string

// Issue is a single rule finding.
type Issue struct {
	Rule     Rule
	Severity Severity
	Message  string
	Context  []ContextLine
}

// NewUnderline builds a single-span ContextLine underlining [start, end) of
// content.
func NewUnderline(source SourceKind, lineNumber int, content string, start, end int, annotation string) ContextLine {
	return ContextLine{
		Source:             source,
		LineNumberInSource: lineNumber,
		Content:            content,
		Spans: []Span{
			{ByteStart: start, ByteEndExclusive: end, Kind: Underline, Annotation: annotation},
		},
	}
}
