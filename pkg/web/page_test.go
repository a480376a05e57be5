package web_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghqa/issues-qa/internal/config"
	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
	"github.com/ghqa/issues-qa/pkg/web"
)

var _ = Describe("Env", func() {
	It("should be built from the browser configuration", func() {
		cfg := config.NewConfigurationWithDefaults().Browser
		cfg.BaseURL = "https://github.com/"
		cfg.Engine = "Edge"

		env := web.NewEnv(cfg)

		Expect(env.BaseURL).To(Equal("https://github.com"))
		Expect(env.Engine).To(Equal(web.EngineEdge))
		Expect(env.URL("/login")).To(Equal("https://github.com/login"))
		Expect(env.URL("login")).To(Equal("https://github.com/login"))
		Expect(env.String()).To(Equal(`Env(base_url="https://github.com", engine=edge, headless=true)`))
	})
})

var _ = Describe("Website", func() {
	var (
		page *fakePage
		site *web.Website
	)

	BeforeEach(func() {
		page = newFakePage("about:blank")
		env := testEnv()
		env.ScreenshotDir = GinkgoT().TempDir()
		site = web.NewWebsite(env, page)
	})

	It("should resolve relative URLs against the base URL", func() {
		Expect(site.Open("/login")).To(Succeed())
		Expect(site.Open("https://elsewhere.example/x")).To(Succeed())

		Expect(page.visited).To(Equal([]string{"https://github.example/login", "https://elsewhere.example/x"}))
	})

	It("should write screenshots under the screenshot directory", func() {
		path, err := site.Screenshot("login failed/1", "after submitting the form")

		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Dir(path)).To(Equal(site.Env().ScreenshotDir))
		Expect(filepath.Base(path)).To(HavePrefix("login_failed_1-"))
		Expect(page.screenshots).To(ConsistOf(path))
	})

	It("should close the page", func() {
		Expect(site.Close()).To(Succeed())
		Expect(page.closed).To(BeTrue())
	})
})

var _ = Describe("BasePage", func() {
	var (
		page *fakePage
		base web.BasePage
	)

	BeforeEach(func() {
		page = newFakePage("about:blank")
		base = web.NewBasePage(web.NewWebsite(testEnv(), page), "/login", "#login_field")
	})

	It("should open and validate the page", func() {
		// Act
		err := base.Open()

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(page.visited).To(Equal([]string{"https://github.example/login"}))
	})

	It("should fail when the URL does not contain the path", func() {
		// Arrange
		page.url = "https://github.example/session"

		// Act
		err := base.ValidateLoaded()

		// Assert
		Expect(srvErrors.IsPageNotLoadedError(err)).To(BeTrue())
		Expect(err).To(MatchError(ContainSubstring("but got 'https://github.example/session'")))
	})

	It("should fail when the body is not attached", func() {
		page.url = "https://github.example/login"
		page.loc("body").detached = true

		err := base.ValidateLoaded()

		Expect(err).To(MatchError(ContainSubstring("document body is not attached")))
	})

	It("should fail when the marker is hidden", func() {
		page.url = "https://github.example/login"
		page.loc("#login_field").hidden = true

		err := base.ValidateLoaded()

		Expect(srvErrors.IsPageNotLoadedError(err)).To(BeTrue())
		Expect(err).To(MatchError(ContainSubstring("page marker '#login_field' was not displayed")))
	})

	It("should reload with and without validation", func() {
		page.url = "https://github.example/elsewhere"

		Expect(base.Refresh(false)).To(Succeed())
		Expect(base.Refresh(true)).NotTo(Succeed())
		Expect(page.reloads).To(Equal(2))
	})
})
