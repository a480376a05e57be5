package github

import (
	"slices"

	"github.com/ghqa/issues-qa/internal/models"
	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
)

// CompareTitleAndBody checks that issue carries the expected title and body.
func CompareTitleAndBody(issue *models.Issue, title, body string) error {
	if issue.Title != title {
		return srvErrors.NewMismatchError("Title", title, issue.Title)
	}
	if issue.Body != body {
		return srvErrors.NewMismatchError("Body", body, issue.Body)
	}
	return nil
}

// VerifyAssignees checks the assignees of a created issue against the request.
// The API drops assignees silently when the caller lacks push access, so an
// issue without any assignee passes.
func VerifyAssignees(req models.IssueRequest, issue *models.Issue) error {
	if issue.Assignee == nil && len(issue.Assignees) == 0 {
		return nil
	}

	if req.Assignee != "" && issue.Assignee != nil && issue.Assignee.Login != req.Assignee {
		return srvErrors.NewMismatchError("Assignee", req.Assignee, issue.Assignee.Login)
	}

	if len(req.Assignees) == 0 {
		return nil
	}

	got := issue.AssigneeLogins()
	if len(got) != len(req.Assignees) {
		return srvErrors.NewMismatchError("Assignees count", len(req.Assignees), len(got))
	}
	for _, login := range req.Assignees {
		if !slices.Contains(got, login) {
			return srvErrors.NewMismatchError("Assignees", req.Assignees, got)
		}
	}
	return nil
}
