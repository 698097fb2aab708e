package width_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-skalski/lintje/internal/width"
)

var _ = Describe("StringWidth", func() {
	It("counts plain ASCII as one column per rune", func() {
		Expect(width.StringWidth("hello")).To(Equal(5))
	})

	It("counts a combining accent as zero-width", func() {
		// "e" + COMBINING ACUTE ACCENT (U+0301)
		Expect(width.StringWidth("é")).To(Equal(1))
	})

	It("counts CJK ideographs as two columns", func() {
		Expect(width.StringWidth("中文")).To(Equal(4))
	})

	It("counts an empty string as zero", func() {
		Expect(width.StringWidth("")).To(Equal(0))
	})
})

var _ = Describe("HasEmojiPresentation", func() {
	It("reports true for a default-presentation emoji", func() {
		Expect(width.HasEmojiPresentation("🎉 release")).To(BeTrue())
	})

	It("reports false for ASCII text", func() {
		Expect(width.HasEmojiPresentation("fix bug")).To(BeFalse())
	})

	It("excludes a bare keycap base digit", func() {
		Expect(width.HasEmojiPresentation("3 things changed")).To(BeFalse())
	})
})

var _ = Describe("IsPunctuation", func() {
	It("recognises ASCII punctuation", func() {
		Expect(width.IsPunctuation('.')).To(BeTrue())
		Expect(width.IsPunctuation('!')).To(BeTrue())
	})

	It("recognises symbol-classified ASCII treated as punctuation", func() {
		Expect(width.IsPunctuation('~')).To(BeTrue())
	})

	It("rejects letters", func() {
		Expect(width.IsPunctuation('a')).To(BeFalse())
	})
})
