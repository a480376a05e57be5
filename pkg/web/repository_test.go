package web_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
	"github.com/ghqa/issues-qa/pkg/web"
)

var _ = Describe("RepositoryPage", func() {
	const toolbar = "ul.UnderlineNav-body.list-style-none"

	var (
		page *fakePage
		repo *web.RepositoryPage
	)

	BeforeEach(func() {
		page = newFakePage("https://github.example/microsoft/vscode")
		repo = web.NewRepositoryPage(web.NewWebsite(testEnv(), page), "microsoft", "vscode")
	})

	Context("ClickTab", func() {
		It("should click the Issues tab when it is not selected", func() {
			// Arrange
			tab := page.loc(toolbar).child("#issues-tab")
			tab.attrs["class"] = "UnderlineNav-item"

			// Act
			err := repo.ClickTab(web.TabIssues)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(tab.clicks).To(Equal(1))
			Expect(page.waited).To(ConsistOf(500 * time.Millisecond))
			Expect(repo.TabPath()).To(Equal("https://github.example/microsoft/vscode/issues"))
			Expect(repo.TabMarker()).To(Equal("#issues-tab.selected"))
		})

		It("should not click a tab that is already selected", func() {
			tab := page.loc(toolbar).child("#issues-tab")
			tab.attrs["class"] = "UnderlineNav-item selected"

			Expect(repo.ClickTab(web.TabIssues)).To(Succeed())
			Expect(tab.clicks).To(BeZero())
		})

		It("should record the Code tab path before failing", func() {
			err := repo.ClickTab(web.TabCode)

			Expect(srvErrors.IsTabNotImplementedError(err)).To(BeTrue())
			Expect(page.loc(toolbar).child("#code-tab").clicks).To(Equal(1))
			Expect(repo.TabPath()).To(Equal("https://github.example/microsoft/vscode"))
		})

		DescribeTable("should refuse tabs without navigation",
			func(tab web.InnerTab) {
				err := repo.ClickTab(tab)

				Expect(srvErrors.IsTabNotImplementedError(err)).To(BeTrue())
				Expect(page.loc(toolbar).child(tab.Selector()).clicks).To(BeZero())
			},
			Entry("pull requests", web.TabPullRequests),
			Entry("actions", web.TabActions),
			Entry("projects", web.TabProjects),
			Entry("wiki", web.TabWiki),
			Entry("security", web.TabSecurity),
			Entry("insights", web.TabInsights),
		)

		It("should refuse unknown tabs without touching the page", func() {
			err := repo.ClickTab(web.InnerTab("Discussions"))

			Expect(srvErrors.IsTabNotImplementedError(err)).To(BeTrue())
			Expect(page.waited).To(BeEmpty())
		})

		It("should fail when the toolbar never shows", func() {
			page.loc(toolbar).hidden = true

			err := repo.ClickTab(web.TabIssues)

			Expect(srvErrors.IsPageNotLoadedError(err)).To(BeTrue())
		})
	})

	Context("creating an issue", func() {
		It("should chain new issue, type and form", func() {
			// Act
			_, err := repo.ClickNewIssue()
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.SelectIssueType(web.IssueTypeBugReport)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.CreateIssue(web.IssueInfo{Title: "Crash on start", Description: "Steps:\n1. open"})

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(page.loc("//span[contains(text(), 'New issue')]").clicks).To(Equal(1))
			Expect(page.loc("//span[contains(text(), 'Bug report')]").clicks).To(Equal(1))
			Expect(page.loc("input[placeholder='Title']").filled).To(Equal([]string{"Crash on start"}))
			Expect(page.loc("textarea[placeholder='Type your description here…']").filled).To(Equal([]string{"Steps:\n1. open"}))
			Expect(page.loc("//span[contains(text(), 'Create')]").clicks).To(Equal(1))
		})
	})
})

var _ = Describe("IssueTab", func() {
	const list = "ul[data-listview-component='items-list']"

	var (
		page *fakePage
		tab  *web.IssueTab
	)

	BeforeEach(func() {
		page = newFakePage("https://github.example/microsoft/vscode/issues")
		tab = web.NewIssueTab(page)
	})

	It("should read issue titles in order", func() {
		page.loc(list).child("a.Link--primary").items = items("first", "second")

		titles, err := tab.IssueTitles()

		Expect(err).NotTo(HaveOccurred())
		Expect(titles).To(Equal([]string{"first", "second"}))
	})

	It("should search with Enter", func() {
		Expect(tab.Search("is:open crash")).To(Succeed())

		box := page.loc("#repository-input")
		Expect(box.filled).To(Equal([]string{"is:open crash"}))
		Expect(box.pressed).To(Equal([]string{"Enter"}))
	})

	It("should click the first item with exactly the text", func() {
		listed := items("Crash on start again", "Crash on start", "Crash on start")
		page.loc(list).child("li").items = listed

		Expect(tab.SelectItem("Crash on start")).To(Succeed())
		Expect(listed[0].clicks).To(BeZero())
		Expect(listed[1].clicks).To(Equal(1))
		Expect(listed[2].clicks).To(BeZero())
	})

	It("should select titles containing quotes and pattern characters", func() {
		listed := items("Can't open (1) [x]?")
		page.loc(list).child("li").items = listed

		Expect(tab.SelectItem("Can't open (1) [x]?")).To(Succeed())
		Expect(listed[0].clicks).To(Equal(1))
	})

	It("should not match a prefix of the text", func() {
		page.loc(list).child("li").items = items("Crash on start")

		err := tab.SelectItem("Crash")
		Expect(srvErrors.IsElementNotFoundError(err)).To(BeTrue())
	})

	It("should report a missing item", func() {
		err := tab.SelectItem("nothing like this")

		Expect(srvErrors.IsElementNotFoundError(err)).To(BeTrue())
		Expect(err).To(MatchError(ContainSubstring("nothing like this")))
	})
})
