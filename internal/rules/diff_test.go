package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/rules"
)

var _ = Describe("DiffPresence", func() {
	rule := rules.NewDiffPresenceRule()

	It("flags an empty commit", func() {
		Expect(rule.Check(&commitmodel.Commit{HasChanges: false})).NotTo(BeEmpty())
	})

	It("passes a commit with changes", func() {
		Expect(rule.Check(&commitmodel.Commit{HasChanges: true})).To(BeEmpty())
	})
})

var _ = Describe("DiffChangeset", func() {
	It("does nothing when the repository has no changeset convention", func() {
		rule := rules.NewDiffChangesetRule(false)
		c := &commitmodel.Commit{HasChanges: true, FileChanges: []string{"pkg/foo.go"}}
		Expect(rule.Check(c)).To(BeEmpty())
	})

	It("hints when code changes without a changeset fragment", func() {
		rule := rules.NewDiffChangesetRule(true)
		c := &commitmodel.Commit{HasChanges: true, FileChanges: []string{"pkg/foo.go"}}
		Expect(rule.Check(c)).NotTo(BeEmpty())
	})

	It("passes when a changeset fragment is included", func() {
		rule := rules.NewDiffChangesetRule(true)
		c := &commitmodel.Commit{HasChanges: true, FileChanges: []string{"pkg/foo.go", ".changeset/tiny-cats-jump.md"}}
		Expect(rule.Check(c)).To(BeEmpty())
	})

	It("passes a documentation-only commit", func() {
		rule := rules.NewDiffChangesetRule(true)
		c := &commitmodel.Commit{HasChanges: true, FileChanges: []string{"README.md"}}
		Expect(rule.Check(c)).To(BeEmpty())
	})
})
