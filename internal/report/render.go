package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smykla-skalski/lintje/internal/issue"
)

// Renderer writes a ValidationReport to a terminal, styled with lipgloss
// when color is enabled.
type Renderer struct {
	errorStyle   lipgloss.Style
	hintStyle    lipgloss.Style
	spanStyle    lipgloss.Style
	subtleStyle  lipgloss.Style
	headingStyle lipgloss.Style
}

// NewRenderer builds a Renderer. When color is false every style renders
// as plain text, the same escape-free output `--no-color` or a non-tty
// stdout expects.
func NewRenderer(color bool) *Renderer {
	r := &Renderer{
		errorStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		hintStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		spanStyle:    lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("9")),
		subtleStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		headingStyle: lipgloss.NewStyle().Bold(true),
	}

	if !color {
		lipgloss.SetColorProfile(3) // termenv.Ascii: the "no color" profile
		r.errorStyle = lipgloss.NewStyle()
		r.hintStyle = lipgloss.NewStyle()
		r.spanStyle = lipgloss.NewStyle()
		r.subtleStyle = lipgloss.NewStyle()
		r.headingStyle = lipgloss.NewStyle()
	}

	return r
}

// Render writes every issue in the report followed by the summary line.
func (r *Renderer) Render(w io.Writer, rep *ValidationReport) {
	for _, cr := range rep.CommitResults {
		for _, iss := range cr.Issues {
			r.renderIssue(w, cr.Commit.ShortSHA, iss)
		}
	}

	for _, iss := range rep.BranchIssues {
		r.renderIssue(w, "", iss)
	}

	fmt.Fprintln(w, r.headingStyle.Render(rep.Summary()))
}

func (r *Renderer) renderIssue(w io.Writer, shortSHA string, iss issue.Issue) {
	style := r.errorStyle
	if iss.Severity == issue.Hint {
		style = r.hintStyle
	}

	label := fmt.Sprintf("%s: %s", iss.Severity, string(iss.Rule))
	if shortSHA != "" {
		label = shortSHA + " " + label
	}

	fmt.Fprintln(w, style.Render(label))
	fmt.Fprintln(w, "  "+iss.Message)

	for _, line := range iss.Context {
		fmt.Fprintln(w, r.subtleStyle.Render("  "+line.Content))
		fmt.Fprintln(w, "  "+r.spanStyle.Render(underlineMarker(line)))
	}

	fmt.Fprintln(w)
}

// underlineMarker builds a caret line under the first span of a
// context line, positioned by byte offset against Content.
func underlineMarker(line issue.ContextLine) string {
	if len(line.Spans) == 0 {
		return ""
	}

	span := line.Spans[0]

	var b strings.Builder

	for i := 0; i < span.ByteStart && i < len(line.Content); i++ {
		b.WriteByte(' ')
	}

	width := span.ByteEndExclusive - span.ByteStart
	if width < 1 {
		width = 1
	}

	b.WriteString(strings.Repeat("^", width))

	if span.Annotation != "" {
		b.WriteString(" " + span.Annotation)
	}

	return b.String()
}
