package models

import (
	"fmt"
	"time"
)

type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
)

func ParseIssueState(s string) (IssueState, error) {
	switch s {
	case "open":
		return IssueStateOpen, nil
	case "closed":
		return IssueStateClosed, nil
	default:
		return "", fmt.Errorf("invalid issue state: %s", s)
	}
}

type StateReason string

const (
	StateReasonCompleted  StateReason = "completed"
	StateReasonNotPlanned StateReason = "not_planned"
	StateReasonReopened   StateReason = "reopened"
)

// Issue mirrors the issue object returned by the REST API.
type Issue struct {
	URL               string            `json:"url"`
	RepositoryURL     string            `json:"repository_url"`
	CommentsURL       string            `json:"comments_url"`
	EventsURL         string            `json:"events_url"`
	HTMLURL           string            `json:"html_url"`
	TimelineURL       string            `json:"timeline_url,omitempty"`
	ID                int64             `json:"id"`
	NodeID            string            `json:"node_id"`
	Number            int               `json:"number"`
	Title             string            `json:"title"`
	Body              string            `json:"body"`
	User              *User             `json:"user"`
	Labels            []Label           `json:"labels"`
	State             IssueState        `json:"state"`
	StateReason       *StateReason      `json:"state_reason"`
	Locked            bool              `json:"locked"`
	ActiveLockReason  *string           `json:"active_lock_reason"`
	Assignee          *User             `json:"assignee"`
	Assignees         []User            `json:"assignees"`
	Milestone         *Milestone        `json:"milestone"`
	Comments          int               `json:"comments"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	ClosedAt          *time.Time        `json:"closed_at"`
	ClosedBy          *User             `json:"closed_by,omitempty"`
	AuthorAssociation string            `json:"author_association"`
	Reactions         *Reactions        `json:"reactions,omitempty"`
	SubIssuesSummary  *SubIssuesSummary `json:"sub_issues_summary,omitempty"`
}

func (i Issue) IsClosed() bool {
	return i.State == IssueStateClosed
}

// AssigneeLogins returns the logins of all assignees in response order.
func (i Issue) AssigneeLogins() []string {
	logins := make([]string, 0, len(i.Assignees))
	for _, a := range i.Assignees {
		logins = append(logins, a.Login)
	}
	return logins
}

func (i Issue) LabelNames() []string {
	names := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		names = append(names, l.Name)
	}
	return names
}

type User struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	NodeID    string `json:"node_id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url,omitempty"`
	Type      string `json:"type,omitempty"`
	SiteAdmin bool   `json:"site_admin"`
}

type Label struct {
	ID          int64  `json:"id"`
	NodeID      string `json:"node_id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
	Default     bool   `json:"default"`
}

type Milestone struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	State       string `json:"state"`
	Description string `json:"description,omitempty"`
}

type Reactions struct {
	URL        string `json:"url"`
	TotalCount int    `json:"total_count"`
	PlusOne    int    `json:"+1"`
	MinusOne   int    `json:"-1"`
	Laugh      int    `json:"laugh"`
	Hooray     int    `json:"hooray"`
	Confused   int    `json:"confused"`
	Heart      int    `json:"heart"`
	Rocket     int    `json:"rocket"`
	Eyes       int    `json:"eyes"`
}

type SubIssuesSummary struct {
	Total            int `json:"total"`
	Completed        int `json:"completed"`
	PercentCompleted int `json:"percent_completed"`
}
