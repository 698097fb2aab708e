package engine_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/engine"
	"github.com/smykla-skalski/lintje/internal/rules"
)

var _ = Describe("LintCommit", func() {
	eng := engine.New()

	It("produces no issues for an ignored commit", func() {
		c := &commitmodel.Commit{Subject: "x", Ignored: true}
		Expect(eng.LintCommit(c)).To(BeEmpty())
	})

	It("short-circuits every other rule when RebaseCommit fires", func() {
		c := &commitmodel.Commit{Subject: "fixup! wip", IsFixup: true}
		issues := eng.LintCommit(c)
		Expect(issues).To(HaveLen(1))
		Expect(issues[0].Rule).To(Equal(rules.RuleRebaseCommit))
	})

	It("short-circuits every other rule when MergeCommit fires", func() {
		c := &commitmodel.Commit{Subject: "Merge branch 'main' of github.com:org/repo", IsMergeCommit: true}
		issues := eng.LintCommit(c)
		Expect(issues).To(HaveLen(1))
		Expect(issues[0].Rule).To(Equal(rules.RuleMergeCommit))
	})

	It("suppresses SubjectLength when SubjectCliche fires", func() {
		c := &commitmodel.Commit{
			Subject:   "Fix",
			BodyLines: []string{"This explains the motivation in enough detail."},
		}
		issues := eng.LintCommit(c)

		var names []string
		for _, iss := range issues {
			names = append(names, string(iss.Rule))
		}

		Expect(names).To(ContainElement(string(rules.RuleSubjectCliche)))
		Expect(names).NotTo(ContainElement(string(rules.RuleSubjectLength)))
	})

	It("suppresses MessageTicketNumber when SubjectTicketNumber fires", func() {
		c := &commitmodel.Commit{
			Subject:   "Improve cache. Closes #123",
			BodyLines: []string{"We avoid evicting warm entries under contention."},
		}
		issues := eng.LintCommit(c)

		var names []string
		for _, iss := range issues {
			names = append(names, string(iss.Rule))
		}

		Expect(names).To(ContainElement(string(rules.RuleSubjectTicketNumber)))
		Expect(names).NotTo(ContainElement(string(rules.RuleMessageTicketNumber)))
	})

	It("honours a lintje:disable directive", func() {
		c := &commitmodel.Commit{
			Subject:      "fix thing",
			IgnoredRules: map[string]bool{"SubjectCapitalization": true},
		}
		issues := eng.LintCommit(c)

		for _, iss := range issues {
			Expect(iss.Rule).NotTo(Equal(rules.RuleSubjectCapitalization))
		}
	})
})

var _ = Describe("LintRange", func() {
	It("lints every commit and preserves input order", func() {
		eng := engine.New()

		commits := []*commitmodel.Commit{
			{Subject: "Add retry logic to the upload client", BodyLines: []string{"Explains the why in enough detail here."}},
			{Subject: "fix", IsFixup: false},
		}

		results, err := eng.LintRange(context.Background(), commits)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))
		Expect(results[0].Commit).To(Equal(commits[0]))
		Expect(results[1].Commit).To(Equal(commits[1]))
	})
})
