package report_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/engine"
	"github.com/smykla-skalski/lintje/internal/issue"
	"github.com/smykla-skalski/lintje/internal/report"
)

var _ = Describe("Build and Summary", func() {
	It("summarizes a clean run", func() {
		results := []engine.CommitResult{
			{Commit: &commitmodel.Commit{}, Issues: nil},
		}
		rep := report.Build(results, nil, false)
		Expect(rep.HasErrors()).To(BeFalse())
		Expect(rep.Summary()).To(Equal("1 commit inspected, no issues detected"))
	})

	It("tallies errors, hints and ignored commits", func() {
		results := []engine.CommitResult{
			{Commit: &commitmodel.Commit{}, Issues: []issue.Issue{{Severity: issue.Error}}},
			{Commit: &commitmodel.Commit{}, Issues: []issue.Issue{{Severity: issue.Hint}}},
			{Commit: &commitmodel.Commit{Ignored: true}, Issues: nil},
		}
		rep := report.Build(results, nil, true)
		Expect(rep.HasErrors()).To(BeTrue())
		Expect(rep.Errors).To(Equal(1))
		Expect(rep.Hints).To(Equal(1))
		Expect(rep.IgnoredCommits).To(Equal(1))
		Expect(rep.Summary()).To(ContainSubstring("1 error"))
		Expect(rep.Summary()).To(ContainSubstring("1 hint"))
		Expect(rep.Summary()).To(ContainSubstring("1 commit ignored"))
		Expect(rep.Summary()).To(ContainSubstring("and 1 branch inspected"))
	})
})

var _ = Describe("Renderer", func() {
	It("writes the summary line after any issues", func() {
		results := []engine.CommitResult{
			{
				Commit: &commitmodel.Commit{ShortSHA: "abc1234"},
				Issues: []issue.Issue{{
					Rule:     "SubjectCapitalization",
					Severity: issue.Error,
					Message:  "Subject does not start with a capital letter",
					Context: []issue.ContextLine{
						issue.NewUnderline(issue.Subject, 1, "fix thing", 0, 1, "capitalize"),
					},
				}},
			},
		}
		rep := report.Build(results, nil, false)

		var buf bytes.Buffer
		report.NewRenderer(false).Render(&buf, rep)

		out := buf.String()
		Expect(out).To(ContainSubstring("SubjectCapitalization"))
		Expect(out).To(ContainSubstring("fix thing"))
		Expect(out).To(ContainSubstring(rep.Summary()))
	})
})
