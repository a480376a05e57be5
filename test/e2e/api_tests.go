package main

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/internal/models"
	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
	"github.com/ghqa/issues-qa/pkg/github"
	"github.com/ghqa/issues-qa/test/e2e/fixtures"
	"github.com/ghqa/issues-qa/test/e2e/infra"
)

var _ = Describe("Issues API", Label("api"), func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("listing", func() {
		It("returns the issues of the repository", func() {
			number, err := issues.CreateIssueWithTitle(ctx, fixtures.Unique(fx.NewIssue.Title), fx.NewIssue.Body)
			Expect(err).NotTo(HaveOccurred())

			list, err := issues.ListIssues(ctx, github.ListOptions{State: github.StateAll, PerPage: 100})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).NotTo(BeEmpty())

			if target.Name() == infra.TargetMock {
				Expect(list).To(ContainElement(HaveField("Number", number)))
			}
		})

		It("rejects an invalid token", func() {
			anonymous, err := issues.WithToken(target.GitHub(), "invalid-token")
			Expect(err).NotTo(HaveOccurred())

			_, err = anonymous.ListIssues(ctx, github.ListOptions{})
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsUnauthorized(err)).To(BeTrue(), "got %v", err)
		})
	})

	Context("creating and updating", func() {
		It("creates an issue and answers 201", func() {
			title := fixtures.Unique(fx.NewIssue.Title)

			status, issue, err := issues.PostPayload(ctx, issues.IssuesEndpoint(), models.NewIssueRequest(title, fx.NewIssue.Body))
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusCreated))
			Expect(issue.Number).To(BeNumerically(">", 0))
			Expect(issue.State).To(Equal(models.IssueStateOpen))
		})

		It("retrieves the issue it created", func() {
			title := fixtures.Unique(fx.NewIssue.Title)
			number, err := issues.CreateIssueWithTitle(ctx, title, fx.NewIssue.Body)
			Expect(err).NotTo(HaveOccurred())

			issue, err := issues.GetIssue(ctx, number)
			Expect(err).NotTo(HaveOccurred())
			Expect(github.CompareTitleAndBody(issue, title, fx.NewIssue.Body)).To(Succeed())
		})

		It("closes an issue and reads the new state back", func() {
			number, err := issues.CreateIssueWithTitle(ctx, fixtures.Unique(fx.NewIssue.Title), fx.NewIssue.Body)
			Expect(err).NotTo(HaveOccurred())

			state, err := issues.SetIssueState(ctx, number, models.IssueStateClosed)
			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(Equal(models.IssueStateClosed))

			Expect(issues.WaitForState(ctx, number, models.IssueStateClosed)).To(Succeed())
		})

		It("reopens a closed issue", func() {
			number, err := issues.CreateIssueWithTitle(ctx, fixtures.Unique(fx.NewIssue.Title), fx.NewIssue.Body)
			Expect(err).NotTo(HaveOccurred())

			_, err = issues.SetIssueState(ctx, number, models.IssueStateClosed)
			Expect(err).NotTo(HaveOccurred())
			Expect(issues.WaitForState(ctx, number, models.IssueStateClosed)).To(Succeed())

			state, err := issues.SetIssueState(ctx, number, models.IssueStateOpen)
			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(Equal(models.IssueStateOpen))
		})

		It("creates an issue from the request template and checks the assignees", func() {
			tpl := fx.RequestTemplate
			opts := []models.IssueRequestOption{models.WithLabels(tpl.Labels...)}
			if login := target.Login(); login != "" {
				opts = append(opts, models.WithAssignee(login), models.WithAssignees(login))
			}
			req := models.NewIssueRequest(fixtures.Unique(tpl.Title), tpl.Body, opts...)

			issue, err := issues.CreateIssue(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			Expect(github.VerifyAssignees(req, issue)).To(Succeed())
		})

		It("forbids closing someone else's issue without push access", func() {
			token, err := target.TokenFor("outsider")
			if err != nil {
				Skip("target cannot act as another user: " + err.Error())
			}
			outsider, err := issues.WithToken(target.GitHub(), token)
			Expect(err).NotTo(HaveOccurred())

			number, err := issues.CreateIssueWithTitle(ctx, fixtures.Unique(fx.NewIssue.Title), fx.NewIssue.Body)
			Expect(err).NotTo(HaveOccurred())

			_, err = outsider.SetIssueState(ctx, number, models.IssueStateClosed)
			Expect(srvErrors.IsForbidden(err)).To(BeTrue(), "got %v", err)
		})
	})

	Context("invalid requests", func() {
		It("refuses an issue without a title", func() {
			req := models.NewIssueRequest("", fx.NewIssue.Body, models.WithoutTitle())

			_, err := issues.CreateIssue(ctx, req)
			Expect(err).To(HaveOccurred())
			Expect(srvErrors.IsValidationFailed(err)).To(BeTrue(), "got %v", err)
		})

		DescribeTable("invalid payloads",
			func(c fixtures.PayloadCase) {
				status, _, err := issues.PostPayload(ctx, issues.IssuesEndpoint(), c.WithUniqueTitle())
				Expect(status).To(Equal(c.Status))

				if !c.Rejected() {
					Expect(err).NotTo(HaveOccurred())
					return
				}
				Expect(srvErrors.IsValidationFailed(err)).To(BeTrue(), "got %v", err)
			},
			payloadEntries(),
		)

		DescribeTable("invalid URLs",
			func(c fixtures.URLCase) {
				url := c.Expand(target.GitHub().APIURL, issues.IssuesEndpoint())
				zap.S().Infow("posting to invalid url", "url", url)

				status, _, err := issues.PostPayload(ctx, url, models.NewIssueRequest(fixtures.Unique(fx.NewIssue.Title), fx.NewIssue.Body))
				Expect(err).To(HaveOccurred())
				Expect(status).To(Equal(c.Status))
			},
			urlEntries(),
		)
	})
})

func payloadEntries() []TableEntry {
	entries := make([]TableEntry, 0, len(fx.InvalidPayloads))
	for _, c := range fx.InvalidPayloads {
		entries = append(entries, Entry(c.Name, c))
	}
	return entries
}

func urlEntries() []TableEntry {
	entries := make([]TableEntry, 0, len(fx.InvalidURLs))
	for _, c := range fx.InvalidURLs {
		entries = append(entries, Entry(c.Name, c))
	}
	return entries
}
