package models

import (
	"encoding/json"

	"github.com/ghqa/issues-qa/internal/util"
)

// IssueRequest is the payload for POST /repos/{owner}/{repo}/issues.
// A nil Title is left out of the payload entirely; the API rejects it.
type IssueRequest struct {
	Title     *string  `json:"title,omitempty"`
	Body      string   `json:"body,omitempty"`
	Assignee  string   `json:"assignee,omitempty"`
	Milestone *int     `json:"milestone,omitempty"`
	Labels    []string `json:"labels"`
	Assignees []string `json:"assignees"`
}

type IssueRequestOption func(*IssueRequest)

func NewIssueRequest(title, body string, opts ...IssueRequestOption) IssueRequest {
	r := IssueRequest{
		Title: util.StringPtr(title),
		Body:  body,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func WithoutTitle() IssueRequestOption {
	return func(r *IssueRequest) {
		r.Title = nil
	}
}

func WithAssignee(login string) IssueRequestOption {
	return func(r *IssueRequest) {
		r.Assignee = login
	}
}

func WithAssignees(logins ...string) IssueRequestOption {
	return func(r *IssueRequest) {
		r.Assignees = append(r.Assignees, logins...)
	}
}

func WithLabels(labels ...string) IssueRequestOption {
	return func(r *IssueRequest) {
		r.Labels = append(r.Labels, labels...)
	}
}

func WithMilestone(number int) IssueRequestOption {
	return func(r *IssueRequest) {
		r.Milestone = util.IntPtr(number)
	}
}

// TitleValue returns the title, or "" when the request has none.
func (r IssueRequest) TitleValue() string {
	return util.Deref(r.Title)
}

// MarshalJSON always emits labels and assignees as arrays.
func (r IssueRequest) MarshalJSON() ([]byte, error) {
	type alias IssueRequest
	a := alias(r)
	a.Labels = util.NonNil(a.Labels)
	a.Assignees = util.NonNil(a.Assignees)
	return json.Marshal(a)
}

// IssueUpdate is the payload for PATCH /repos/{owner}/{repo}/issues/{number}.
type IssueUpdate struct {
	Title       *string      `json:"title,omitempty"`
	Body        *string      `json:"body,omitempty"`
	State       *IssueState  `json:"state,omitempty"`
	StateReason *StateReason `json:"state_reason,omitempty"`
	Assignees   []string     `json:"assignees,omitempty"`
	Labels      []string     `json:"labels,omitempty"`
	Milestone   *int         `json:"milestone,omitempty"`
}

func StateUpdate(state IssueState) IssueUpdate {
	return IssueUpdate{State: util.Ptr(state)}
}
