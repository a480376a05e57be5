package main

import (
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/internal/config"
	"github.com/ghqa/issues-qa/pkg/web"
	"github.com/ghqa/issues-qa/test/e2e/fixtures"
)

var _ = Describe("Web UI", Label("ui"), Serial, func() {
	var (
		site   *web.Website
		login  *web.LoginPage
		assert playwright.PlaywrightAssertions
	)

	BeforeEach(func() {
		if !cfg.UI {
			Skip("web UI specs are disabled, pass -ui to run them")
		}
		if !cfg.Credentials.Complete() {
			Skip("ISSUESQA_CREDENTIALS_USERNAME and ISSUESQA_CREDENTIALS_PASSWORD must be set")
		}

		var err error
		site, err = web.Launch(web.NewEnv(cfg.Browser))
		Expect(err).NotTo(HaveOccurred())
		zap.S().Infow("browser ready", "env", site.Env().String())

		assert = playwright.NewPlaywrightAssertions(float64(cfg.Browser.ElementTimeout.Milliseconds()))

		login = web.NewLoginPage(site)
		Expect(login.Open()).To(Succeed())
	})

	AfterEach(func() {
		if site == nil {
			return
		}
		if CurrentSpecReport().Failed() {
			if path, err := site.Screenshot(CurrentSpecReport().LeafNodeText, "failure"); err == nil {
				AddReportEntry("screenshot", path)
			}
		}
		Expect(site.Close()).To(Succeed())
		site = nil
	})

	It("logs in with valid credentials", func() {
		dashboard, err := login.Login(cfg.Credentials)
		Expect(err).NotTo(HaveOccurred())

		header := dashboard.Header().Unwrap()
		Expect(assert.Locator(header).ToBeVisible()).To(Succeed())
		Expect(assert.Locator(header).ToHaveText("Dashboard")).To(Succeed())
	})

	It("shows an error for an unknown user", func() {
		_, err := login.Login(config.Credentials{
			Username: cfg.Credentials.InvalidUsername,
			Password: uuid.NewString(),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(assert.Locator(login.ErrorMessage().Unwrap()).ToContainText("Incorrect username or password")).To(Succeed())
	})

	It("stays on the login page without a user", func() {
		Expect(login.ClickLogin()).To(Succeed())

		dashboard := web.NewDashboardPage(site)
		Expect(assert.Locator(dashboard.Header().Unwrap()).Not().ToBeVisible()).To(Succeed())
	})

	It("signs out", func() {
		dashboard, err := login.Login(cfg.Credentials)
		Expect(err).NotTo(HaveOccurred())
		Expect(assert.Locator(dashboard.Header().Unwrap()).ToBeVisible()).To(Succeed())

		Expect(dashboard.SignOut()).To(Succeed())
		Expect(assert.Locator(login.SignOutConfirmation().Unwrap()).ToBeEnabled()).To(Succeed())
	})

	It("creates an issue from the issues tab", func() {
		dashboard, err := login.Login(cfg.Credentials)
		Expect(err).NotTo(HaveOccurred())

		repo, err := dashboard.OpenRepository(cfg.GitHub.Owner, cfg.GitHub.Repo)
		Expect(err).NotTo(HaveOccurred())
		Expect(repo.ClickTab(web.TabIssues)).To(Succeed())

		info := fx.UIIssue.IssueInfo
		info.Title = fixtures.Unique(info.Title)

		repo, err = repo.ClickNewIssue()
		Expect(err).NotTo(HaveOccurred())
		repo, err = repo.SelectIssueType(fx.UIIssue.Type)
		Expect(err).NotTo(HaveOccurred())
		_, err = repo.CreateIssue(info)
		Expect(err).NotTo(HaveOccurred())
	})
})
