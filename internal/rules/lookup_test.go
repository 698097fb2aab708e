package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/lintje/internal/rules"
)

var _ = Describe("IsClicheSubject", func() {
	It("flags a bare cliché verb", func() {
		Expect(rules.IsClicheSubject("Fix")).To(BeTrue())
	})

	It("flags a cliché verb plus a generic noun", func() {
		Expect(rules.IsClicheSubject("Fix bug")).To(BeTrue())
	})

	It("flags wip variants", func() {
		Expect(rules.IsClicheSubject("WIP")).To(BeTrue())
		Expect(rules.IsClicheSubject("work in progress on login")).To(BeTrue())
	})

	It("does not flag a descriptive subject that happens to start with a cliché verb", func() {
		Expect(rules.IsClicheSubject("Fix race condition in the session cache")).To(BeFalse())
	})

	It("ignores surrounding punctuation", func() {
		Expect(rules.IsClicheSubject("Fix bug.")).To(BeTrue())
	})
})

var _ = Describe("FindBuildTag", func() {
	It("finds a [skip ci] tag", func() {
		_, _, ok := rules.FindBuildTag("Release v1.2.3 [skip ci]")
		Expect(ok).To(BeTrue())
	})

	It("finds a [ci skip] tag case-insensitively", func() {
		_, _, ok := rules.FindBuildTag("Release [CI SKIP]")
		Expect(ok).To(BeTrue())
	})

	It("reports no match when there is no build tag", func() {
		_, _, ok := rules.FindBuildTag("Release v1.2.3")
		Expect(ok).To(BeFalse())
	})
})
