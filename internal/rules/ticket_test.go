package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/lintje/internal/rules"
)

var _ = Describe("FindTicketReferences", func() {
	It("recognises a shorthand issue reference", func() {
		matches := rules.FindTicketReferences("Closes #42 once merged")
		Expect(matches).NotTo(BeEmpty())
	})

	It("recognises a dotted tracker ID", func() {
		Expect(rules.HasTicketReference("PROJ-123: rework the cache")).To(BeTrue())
	})

	It("rejects a dotted ID whose prefix has fewer than two letters", func() {
		Expect(rules.HasTicketReference("v1-2 release")).To(BeFalse())
	})

	It("recognises a cross-repo reference", func() {
		Expect(rules.HasTicketReference("see org/other-repo#17")).To(BeTrue())
	})

	It("recognises a full GitHub issue URL", func() {
		Expect(rules.HasTicketReference("https://github.com/org/repo/issues/99")).To(BeTrue())
	})

	It("recognises a keyword phrase without a hash", func() {
		Expect(rules.HasTicketReference("Fixes 123")).To(BeTrue())
	})

	It("does not overlap-report the same span twice", func() {
		matches := rules.FindTicketReferences("Fixes #42")
		Expect(matches).To(HaveLen(1))
	})

	It("reports no match for ordinary prose", func() {
		Expect(rules.HasTicketReference("no references here")).To(BeFalse())
	})
})
