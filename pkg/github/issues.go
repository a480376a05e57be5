package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/ghqa/issues-qa/internal/models"
	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
)

// StateAll lists both open and closed issues.
const StateAll = "all"

type ListOptions struct {
	State   string // open, closed or all; empty means open
	Labels  []string
	PerPage int
	Page    int
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.State != "" {
		q.Set("state", o.State)
	}
	if len(o.Labels) > 0 {
		q.Set("labels", strings.Join(o.Labels, ","))
	}
	if o.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListIssues fetches one page of issues and logs the title and number of each.
func (c *Client) ListIssues(ctx context.Context, opts ListOptions) ([]models.Issue, error) {
	var issues []models.Issue
	if _, err := c.do(ctx, http.MethodGet, c.IssuesEndpoint()+opts.query(), nil, &issues); err != nil {
		c.log.Errorw("failed to list issues", "error", err)
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	for _, issue := range issues {
		c.log.Infow("issue", "number", issue.Number, "title", issue.Title)
	}
	return issues, nil
}

func (c *Client) GetIssue(ctx context.Context, number int) (*models.Issue, error) {
	var issue models.Issue
	if _, err := c.do(ctx, http.MethodGet, c.IssueURL(number), nil, &issue); err != nil {
		return nil, fmt.Errorf("failed to get issue %d: %w", number, err)
	}
	return &issue, nil
}

// CreateIssue posts req and succeeds only when the server answers 201.
func (c *Client) CreateIssue(ctx context.Context, req models.IssueRequest) (*models.Issue, error) {
	var issue models.Issue
	status, err := c.do(ctx, http.MethodPost, c.IssuesEndpoint(), req, &issue)
	if err != nil {
		c.log.Errorw("failed to create issue", "title", req.TitleValue(), "status", status, "error", err)
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	if status != http.StatusCreated {
		return nil, srvErrors.NewAPIError(status, "unexpected status creating issue", c.IssuesEndpoint())
	}

	c.log.Infow("issue created", "number", issue.Number, "title", issue.Title)
	return &issue, nil
}

// CreateIssueWithTitle creates an issue from a title and body and returns its number.
func (c *Client) CreateIssueWithTitle(ctx context.Context, title, body string) (int, error) {
	issue, err := c.CreateIssue(ctx, models.NewIssueRequest(title, body))
	if err != nil {
		return 0, err
	}
	return issue.Number, nil
}

func (c *Client) UpdateIssue(ctx context.Context, number int, update models.IssueUpdate) (*models.Issue, error) {
	var issue models.Issue
	if _, err := c.do(ctx, http.MethodPatch, c.IssueURL(number), update, &issue); err != nil {
		c.log.Errorw("failed to update issue", "number", number, "error", err)
		return nil, fmt.Errorf("failed to update issue %d: %w", number, err)
	}
	return &issue, nil
}

// SetIssueState changes the state of an issue and returns the state the server reports.
func (c *Client) SetIssueState(ctx context.Context, number int, state models.IssueState) (models.IssueState, error) {
	issue, err := c.UpdateIssue(ctx, number, models.StateUpdate(state))
	if err != nil {
		return "", err
	}
	c.log.Infow("issue state changed", "number", number, "state", issue.State)
	return issue.State, nil
}

// IssueState returns the current state of an issue.
func (c *Client) IssueState(ctx context.Context, number int) (models.IssueState, error) {
	issue, err := c.GetIssue(ctx, number)
	if err != nil {
		return "", err
	}
	return issue.State, nil
}

// WaitForState polls the issue until it reports state or the attempts run out.
func (c *Client) WaitForState(ctx context.Context, number int, state models.IssueState) error {
	_, err := backoff.Retry(ctx, func() (models.IssueState, error) {
		current, err := c.IssueState(ctx, number)
		if err != nil {
			if srvErrors.IsRetryable(err) {
				return "", err
			}
			return "", backoff.Permanent(err)
		}
		if current != state {
			return current, srvErrors.NewMismatchError("State", state, current)
		}
		return current, nil
	},
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.maxRetries+3),
		backoff.WithMaxElapsedTime(time.Minute),
	)
	return err
}

// PostPayload posts an arbitrary payload to an arbitrary URL. The status
// code is reported whether or not the request succeeded; the issue is set
// only on success.
func (c *Client) PostPayload(ctx context.Context, target string, payload any) (int, *models.Issue, error) {
	var issue models.Issue
	status, err := c.do(ctx, http.MethodPost, target, payload, &issue)
	if err != nil {
		return status, nil, err
	}
	return status, &issue, nil
}
