package util_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghqa/issues-qa/internal/util"
)

var _ = Describe("util", func() {
	It("matches logins case-insensitively", func() {
		Expect(util.ContainsFold([]string{"Octocat"}, "octocat")).To(BeTrue())
		Expect(util.ContainsFold([]string{"Octocat"}, "hubot")).To(BeFalse())
	})

	It("dereferences nil pointers to the zero value", func() {
		Expect(util.Deref[string](nil)).To(BeEmpty())
		Expect(util.Deref(util.IntPtr(7))).To(Equal(7))
	})

	It("normalizes menu text", func() {
		Expect(util.NormalizeText("  Sign Out \n")).To(Equal("sign out"))
	})

	It("encodes nil slices as empty arrays", func() {
		var labels []string
		data, err := json.Marshal(util.NonNil(labels))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("[]"))
	})
})
