package github_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ghqa/issues-qa/internal/models"
	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
	"github.com/ghqa/issues-qa/pkg/github"
)

var _ = Describe("verification helpers", func() {
	Context("CompareTitleAndBody", func() {
		issue := &models.Issue{Title: "t", Body: "b"}

		It("should pass on equal values", func() {
			Expect(github.CompareTitleAndBody(issue, "t", "b")).To(Succeed())
		})

		It("should name the mismatched field", func() {
			err := github.CompareTitleAndBody(issue, "t", "other")
			Expect(srvErrors.IsMismatchError(err)).To(BeTrue())
			Expect(err).To(MatchError(ContainSubstring("Body mismatch")))
		})
	})

	Context("VerifyAssignees", func() {
		req := models.NewIssueRequest("t", "b", models.WithAssignee("alice"), models.WithAssignees("alice", "bob"))

		It("should pass when the server dropped every assignee", func() {
			Expect(github.VerifyAssignees(req, &models.Issue{})).To(Succeed())
		})

		It("should pass when logins match", func() {
			issue := &models.Issue{
				Assignee:  &models.User{Login: "alice"},
				Assignees: []models.User{{Login: "bob"}, {Login: "alice"}},
			}
			Expect(github.VerifyAssignees(req, issue)).To(Succeed())
		})

		It("should fail on a different primary assignee", func() {
			issue := &models.Issue{
				Assignee:  &models.User{Login: "bob"},
				Assignees: []models.User{{Login: "bob"}, {Login: "alice"}},
			}
			Expect(github.VerifyAssignees(req, issue)).To(MatchError(ContainSubstring("Assignee mismatch")))
		})

		It("should fail on a different count", func() {
			issue := &models.Issue{
				Assignee:  &models.User{Login: "alice"},
				Assignees: []models.User{{Login: "alice"}},
			}
			Expect(github.VerifyAssignees(req, issue)).To(MatchError(ContainSubstring("Assignees count mismatch")))
		})
	})
})
