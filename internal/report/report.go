// Package report aggregates engine results into a ValidationReport and
// renders the terminal-facing summary line and issue listing.
package report

import (
	"fmt"
	"strings"

	"github.com/smykla-skalski/lintje/internal/engine"
	"github.com/smykla-skalski/lintje/internal/issue"
)

// ValidationReport is the full outcome of a lint run: per-commit results
// plus the branch result, with totals precomputed for the summary line.
type ValidationReport struct {
	CommitResults []engine.CommitResult
	BranchIssues  []issue.Issue
	BranchChecked bool

	InspectedCommits int
	IgnoredCommits   int
	Errors           int
	Hints            int
}

// Build tallies totals from commit results and an optional branch result.
func Build(commitResults []engine.CommitResult, branchIssues []issue.Issue, branchChecked bool) *ValidationReport {
	r := &ValidationReport{
		CommitResults: commitResults,
		BranchIssues:  branchIssues,
		BranchChecked: branchChecked,
	}

	for _, cr := range commitResults {
		r.InspectedCommits++

		if cr.Commit.Ignored {
			r.IgnoredCommits++
		}

		tallySeverities(cr.Issues, &r.Errors, &r.Hints)
	}

	tallySeverities(branchIssues, &r.Errors, &r.Hints)

	return r
}

func tallySeverities(issues []issue.Issue, errors, hints *int) {
	for _, iss := range issues {
		if iss.Severity == issue.Hint {
			*hints++
		} else {
			*errors++
		}
	}
}

// HasErrors reports whether the report should cause a non-zero exit.
func (r *ValidationReport) HasErrors() bool {
	return r.Errors > 0
}

// Summary renders the one-line totals summary, e.g.:
// "3 commits and 1 branch inspected, 2 errors, 1 hint detected, 1 commit ignored".
func (r *ValidationReport) Summary() string {
	var parts []string

	subjectParts := []string{pluralize(r.InspectedCommits, "commit", "commits")}
	if r.BranchChecked {
		subjectParts = append(subjectParts, pluralize(1, "branch", "branches"))
	}

	parts = append(parts, strings.Join(subjectParts, " and ")+" inspected")

	findingParts := []string{}
	if r.Errors > 0 {
		findingParts = append(findingParts, pluralize(r.Errors, "error", "errors"))
	}

	if r.Hints > 0 {
		findingParts = append(findingParts, pluralize(r.Hints, "hint", "hints"))
	}

	if len(findingParts) > 0 {
		parts = append(parts, strings.Join(findingParts, ", ")+" detected")
	} else {
		parts = append(parts, "no issues detected")
	}

	if r.IgnoredCommits > 0 {
		parts = append(parts, pluralize(r.IgnoredCommits, "commit", "commits")+" ignored")
	}

	return strings.Join(parts, ", ")
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}

	return fmt.Sprintf("%d %s", n, plural)
}
