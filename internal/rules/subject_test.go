package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/rules"
)

func commit(subject string) *commitmodel.Commit {
	return &commitmodel.Commit{Subject: subject}
}

var _ = Describe("SubjectLength", func() {
	rule := rules.NewSubjectLengthRule()

	It("flags an empty subject", func() {
		Expect(rule.Check(commit(""))).NotTo(BeEmpty())
	})

	It("flags a too-short subject", func() {
		Expect(rule.Check(commit("Fix"))).NotTo(BeEmpty())
	})

	It("flags a too-long subject", func() {
		long := "Refactor the entire authentication subsystem end to end today"
		Expect(rule.Check(commit(long))).NotTo(BeEmpty())
	})

	It("passes a well-sized subject", func() {
		Expect(rule.Check(commit("Add retry logic to the upload client"))).To(BeEmpty())
	})
})

var _ = Describe("SubjectMood", func() {
	rule := rules.NewSubjectMoodRule()

	It("flags a past-tense first word", func() {
		Expect(rule.Check(commit("Fixed the race condition"))).NotTo(BeEmpty())
	})

	It("passes an imperative first word", func() {
		Expect(rule.Check(commit("Fix the race condition"))).To(BeEmpty())
	})
})

var _ = Describe("SubjectWhitespace", func() {
	rule := rules.NewSubjectWhitespaceRule()

	It("flags a leading space", func() {
		Expect(rule.Check(commit(" Fix the race condition"))).NotTo(BeEmpty())
	})

	It("passes a subject with no leading whitespace", func() {
		Expect(rule.Check(commit("Fix the race condition"))).To(BeEmpty())
	})
})

var _ = Describe("SubjectCapitalization", func() {
	rule := rules.NewSubjectCapitalizationRule()

	It("flags a lowercase first letter", func() {
		Expect(rule.Check(commit("fix the race condition"))).NotTo(BeEmpty())
	})

	It("passes a capitalized first letter", func() {
		Expect(rule.Check(commit("Fix the race condition"))).To(BeEmpty())
	})
})

var _ = Describe("SubjectPunctuation", func() {
	rule := rules.NewSubjectPunctuationRule()

	It("flags a trailing period", func() {
		Expect(rule.Check(commit("Fix the race condition."))).NotTo(BeEmpty())
	})

	It("flags a leading bullet", func() {
		Expect(rule.Check(commit("- Fix the race condition"))).NotTo(BeEmpty())
	})

	It("flags a leading emoji", func() {
		Expect(rule.Check(commit("🎉 Fix the race condition"))).NotTo(BeEmpty())
	})

	It("passes plain punctuation-free text", func() {
		Expect(rule.Check(commit("Fix the race condition"))).To(BeEmpty())
	})
})

var _ = Describe("SubjectTicketNumber", func() {
	rule := rules.NewSubjectTicketNumberRule()

	It("flags a ticket reference in the subject", func() {
		Expect(rule.Check(commit("Fix the race condition (#42)"))).NotTo(BeEmpty())
	})

	It("passes a subject without a ticket reference", func() {
		Expect(rule.Check(commit("Fix the race condition"))).To(BeEmpty())
	})
})

var _ = Describe("SubjectPrefix", func() {
	rule := rules.NewSubjectPrefixRule()

	It("flags a conventional-commit prefix", func() {
		Expect(rule.Check(commit("fix: the race condition"))).NotTo(BeEmpty())
	})

	It("flags a scoped conventional-commit prefix", func() {
		Expect(rule.Check(commit("feat(auth): add session refresh"))).NotTo(BeEmpty())
	})

	It("passes a subject with no prefix", func() {
		Expect(rule.Check(commit("Fix the race condition"))).To(BeEmpty())
	})
})

var _ = Describe("SubjectBuildTag", func() {
	rule := rules.NewSubjectBuildTagRule()

	It("flags a skip-CI tag", func() {
		Expect(rule.Check(commit("Release v1.2.3 [skip ci]"))).NotTo(BeEmpty())
	})

	It("passes a subject without a build tag", func() {
		Expect(rule.Check(commit("Release v1.2.3"))).To(BeEmpty())
	})
})

var _ = Describe("SubjectCliche", func() {
	rule := rules.NewSubjectClicheRule()

	It("flags a cliché subject", func() {
		Expect(rule.Check(commit("Fix bug"))).NotTo(BeEmpty())
	})

	It("passes a descriptive subject", func() {
		Expect(rule.Check(commit("Fix race condition in the session cache"))).To(BeEmpty())
	})
})
