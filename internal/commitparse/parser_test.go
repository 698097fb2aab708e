package commitparse_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/lintje/internal/commitparse"
)

var _ = Describe("Parse", func() {
	It("splits subject and body on the blank separator", func() {
		c := commitparse.Parse(commitparse.Input{Message: "Add feature\n\nExplain why this is needed."})
		Expect(c.Subject).To(Equal("Add feature"))
		Expect(c.BodyLines).To(Equal([]string{"Explain why this is needed."}))
		Expect(c.MessageHadNoBlankAfterSubject).To(BeFalse())
	})

	It("flags a missing blank line after the subject", func() {
		c := commitparse.Parse(commitparse.Input{Message: "Add feature\nExplain why this is needed."})
		Expect(c.MessageHadNoBlankAfterSubject).To(BeTrue())
	})

	It("detects fixup/squash/amend commits", func() {
		Expect(commitparse.Parse(commitparse.Input{Message: "fixup! Add feature"}).IsFixup).To(BeTrue())
		Expect(commitparse.Parse(commitparse.Input{Message: "squash! Add feature"}).IsSquash).To(BeTrue())
		Expect(commitparse.Parse(commitparse.Input{Message: "amend! Add feature"}).IsAmend).To(BeTrue())
	})

	It("marks a bot-authored commit ignored", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: "Bump dependency",
			Email:   "49699333+dependabot[bot]@users.noreply.github.com",
		})
		Expect(c.Ignored).To(BeTrue())
	})

	It("marks a GitHub PR merge commit ignored", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: "Merge pull request #42 from org/feature-branch\n\nAdd feature",
		})
		Expect(c.Ignored).To(BeTrue())
	})

	It("marks a squash-from-PR commit ignored", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: "Add feature (#42)\n\n* Add feature\n* Fix lint",
		})
		Expect(c.Ignored).To(BeTrue())
	})

	It("marks a revert commit ignored", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: `Revert "Add feature"` + "\n\nThis reverts commit abc123.",
		})
		Expect(c.Ignored).To(BeTrue())
	})

	It("flags a non-PR merge commit", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: "Merge branch 'main' of github.com:org/repo",
		})
		Expect(c.IsMergeCommit).To(BeTrue())
		Expect(c.Ignored).To(BeFalse())
	})

	It("extracts a trailing trailer block without stripping it from the body", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: "Add feature\n\nExplain why.\n\nCloses: #42\nSigned-off-by: Jane Doe <jane@example.com>",
		})
		Expect(c.Trailers).To(HaveLen(2))
		Expect(c.Trailers[0].Key).To(Equal("Closes"))
		Expect(c.Trailers[0].Value).To(Equal("#42"))
		Expect(c.BodyLines).To(ContainElement("Signed-off-by: Jane Doe <jane@example.com>"))
		Expect(c.IsTrailerLine(len(c.BodyLines))).To(BeTrue())
		Expect(c.IsTrailerLine(1)).To(BeFalse())
	})

	It("does not treat a mid-body Key: value line as a trailer block without a preceding blank line", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: "Add feature\n\nSee: this line\nand this continues the paragraph.",
		})
		Expect(c.Trailers).To(BeEmpty())
	})

	It("scans lintje:disable directives from the body only", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: "Add feature\n\nlintje:disable SubjectLength\n\nCloses: #42",
		})
		Expect(c.RuleDisabled("SubjectLength")).To(BeTrue())
	})

	It("treats NeedsRebase as an alias for RebaseCommit", func() {
		c := commitparse.Parse(commitparse.Input{
			Message: "fixup! Add feature\n\nlintje:disable NeedsRebase",
		})
		Expect(c.RuleDisabled("RebaseCommit")).To(BeTrue())
	})
})
