package github_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghqa/issues-qa/internal/config"
	"github.com/ghqa/issues-qa/internal/models"
	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
	"github.com/ghqa/issues-qa/pkg/github"
	"github.com/ghqa/issues-qa/pkg/github/githubmock"
)

func fastBackOff() backoff.BackOff {
	return backoff.NewConstantBackOff(time.Millisecond)
}

// flakyTransport answers 502 for the first n requests.
type flakyTransport struct {
	failures int32
	calls    atomic.Int32
	base     http.RoundTripper
}

func (t *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.calls.Add(1) <= t.failures {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Status:     "502 Bad Gateway",
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       http.NoBody,
			Request:    req,
		}, nil
	}
	return t.base.RoundTrip(req)
}

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		srv    *githubmock.Server
		cfg    config.GitHub
		client *github.Client
	)

	newClient := func(token string, opts ...github.Option) *github.Client {
		c := cfg
		c.Token = token
		cl, err := github.NewClient(c, append([]github.Option{github.WithBackOff(fastBackOff)}, opts...)...)
		Expect(err).NotTo(HaveOccurred())
		return cl
	}

	BeforeEach(func() {
		ctx = context.Background()

		srv = githubmock.New("octo-org", "sandbox", githubmock.WithCollaborators("alice"))
		Expect(srv.Start("127.0.0.1:0")).To(Succeed())
		DeferCleanup(srv.Stop)

		cfg = config.NewConfigurationWithDefaults().GitHub
		cfg.APIURL = srv.URL()
		cfg.Owner = "octo-org"
		cfg.Repo = "sandbox"

		token, err := srv.IssueToken("alice")
		Expect(err).NotTo(HaveOccurred())
		client = newClient(token)
	})

	It("should build endpoint URLs", func() {
		Expect(client.IssuesEndpoint()).To(Equal(srv.URL() + "/repos/octo-org/sandbox/issues"))
		Expect(client.IssueURL(7)).To(Equal(srv.URL() + "/repos/octo-org/sandbox/issues/7"))
	})

	Context("create and retrieve", func() {
		It("should round trip title and body", func() {
			// Arrange
			req := models.NewIssueRequest("Round trip", "Created by the client test")

			// Act
			created, err := client.CreateIssue(ctx, req)
			Expect(err).NotTo(HaveOccurred())
			fetched, err := client.GetIssue(ctx, created.Number)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(github.CompareTitleAndBody(fetched, "Round trip", "Created by the client test")).To(Succeed())
			Expect(fetched.User.Login).To(Equal("alice"))
		})

		It("should return the number of a titled issue", func() {
			number, err := client.CreateIssueWithTitle(ctx, "by title", "body")
			Expect(err).NotTo(HaveOccurred())
			Expect(number).To(Equal(1))
		})

		It("should fail with a validation error when the title is missing", func() {
			_, err := client.CreateIssue(ctx, models.NewIssueRequest("", "no title", models.WithoutTitle()))

			Expect(srvErrors.IsValidationFailed(err)).To(BeTrue())
			var apiErr *srvErrors.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.Message).To(Equal("Validation Failed"))
			Expect(apiErr.Errors).To(ContainElement(HaveField("Field", "title")))
		})

		It("should report 404 for unknown issues", func() {
			_, err := client.GetIssue(ctx, 404)
			Expect(srvErrors.IsNotFound(err)).To(BeTrue())
		})
	})

	Context("state", func() {
		var number int

		BeforeEach(func() {
			number = srv.AddIssue("alice", models.NewIssueRequest("state", "")).Number
		})

		It("should close an issue and observe the new state", func() {
			state, err := client.SetIssueState(ctx, number, models.IssueStateClosed)
			Expect(err).NotTo(HaveOccurred())
			Expect(state).To(Equal(models.IssueStateClosed))

			Expect(client.WaitForState(ctx, number, models.IssueStateClosed)).To(Succeed())
			Expect(client.IssueState(ctx, number)).To(Equal(models.IssueStateClosed))
		})

		It("should give up waiting for a state that never comes", func() {
			err := client.WaitForState(ctx, number, models.IssueStateClosed)
			Expect(srvErrors.IsMismatchError(err)).To(BeTrue())
		})

		It("should update other fields", func() {
			title := "renamed"
			issue, err := client.UpdateIssue(ctx, number, models.IssueUpdate{Title: &title, Labels: []string{"triage"}})
			Expect(err).NotTo(HaveOccurred())
			Expect(issue.Title).To(Equal("renamed"))
			Expect(issue.LabelNames()).To(ConsistOf("triage"))
		})
	})

	Context("ListIssues", func() {
		It("should pass filters to the server", func() {
			srv.AddIssue("alice", models.NewIssueRequest("open bug", "", models.WithLabels("bug")))
			srv.AddIssue("alice", models.NewIssueRequest("open chore", ""))

			issues, err := client.ListIssues(ctx, github.ListOptions{State: github.StateAll, Labels: []string{"bug"}, PerPage: 10})

			Expect(err).NotTo(HaveOccurred())
			Expect(issues).To(HaveLen(1))
			Expect(issues[0].Title).To(Equal("open bug"))
		})
	})

	Context("without a token", func() {
		var anonymous *github.Client

		BeforeEach(func() {
			for _, name := range []string{"GH_TOKEN", "GITHUB_TOKEN", "GH_ENTERPRISE_TOKEN", "GITHUB_ENTERPRISE_TOKEN"} {
				GinkgoT().Setenv(name, "")
			}
			GinkgoT().Setenv("GH_CONFIG_DIR", GinkgoT().TempDir())
			GinkgoT().Setenv("GH_PATH", "/nonexistent/gh")

			anonymous = newClient("")
		})

		It("should list issues anonymously", func() {
			srv.AddIssue("alice", models.NewIssueRequest("public", ""))

			issues, err := anonymous.ListIssues(ctx, github.ListOptions{})

			Expect(err).NotTo(HaveOccurred())
			Expect(issues).To(ConsistOf(HaveField("Title", "public")))
		})

		It("should be refused on writes", func() {
			_, err := anonymous.CreateIssue(ctx, models.NewIssueRequest("nope", ""))
			Expect(srvErrors.IsUnauthorized(err)).To(BeTrue(), "got %v", err)
		})
	})

	Context("PostPayload", func() {
		It("should report the status of a successful post", func() {
			status, issue, err := client.PostPayload(ctx, client.IssuesEndpoint(), map[string]string{"title": "only title"})

			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(http.StatusCreated))
			Expect(issue.Title).To(Equal("only title"))
		})

		DescribeTable("should report the status of a failed post",
			func(path string, payload any, want int) {
				status, issue, err := client.PostPayload(ctx, srv.URL()+path, payload)

				Expect(err).To(HaveOccurred())
				Expect(status).To(Equal(want))
				Expect(issue).To(BeNil())
			},
			Entry("body only", "/repos/octo-org/sandbox/issues", map[string]string{"body": "x"}, http.StatusUnprocessableEntity),
			Entry("empty payload", "/repos/octo-org/sandbox/issues", map[string]string{}, http.StatusUnprocessableEntity),
			Entry("wrong sub-path", "/repos/octo-org/sandbox/issue", map[string]string{"title": "x"}, http.StatusNotFound),
			Entry("unknown repository", "/repos/octo-org/nope/issues", map[string]string{"title": "x"}, http.StatusNotFound),
		)

		It("should report 401 for a bad token", func() {
			bad := newClient("forged")

			status, _, err := bad.PostPayload(ctx, bad.IssuesEndpoint(), map[string]string{"title": "x"})

			Expect(srvErrors.IsUnauthorized(err)).To(BeTrue())
			Expect(status).To(Equal(http.StatusUnauthorized))
		})
	})

	Context("retries", func() {
		It("should retry server errors", func() {
			token, err := srv.IssueToken("alice")
			Expect(err).NotTo(HaveOccurred())
			flaky := &flakyTransport{failures: 2, base: http.DefaultTransport}
			cl := newClient(token, github.WithTransport(flaky))

			_, err = cl.ListIssues(ctx, github.ListOptions{})

			Expect(err).NotTo(HaveOccurred())
			Expect(flaky.calls.Load()).To(BeEquivalentTo(3))
		})

		It("should stop after the configured number of retries", func() {
			cfg.MaxRetries = 1
			flaky := &flakyTransport{failures: 10, base: http.DefaultTransport}
			cl := newClient("forged", github.WithTransport(flaky))

			_, err := cl.ListIssues(ctx, github.ListOptions{})

			Expect(srvErrors.StatusCode(err)).To(Equal(http.StatusBadGateway))
			Expect(flaky.calls.Load()).To(BeEquivalentTo(2))
		})

		It("should not retry client errors", func() {
			token, err := srv.IssueToken("alice")
			Expect(err).NotTo(HaveOccurred())
			flaky := &flakyTransport{base: http.DefaultTransport}
			cl := newClient(token, github.WithTransport(flaky))

			_, err = cl.GetIssue(ctx, 99)

			Expect(srvErrors.IsNotFound(err)).To(BeTrue())
			Expect(flaky.calls.Load()).To(BeEquivalentTo(1))
		})
	})
})
