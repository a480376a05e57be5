package githubmock

import (
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ghqa/issues-qa/internal/models"
	"github.com/ghqa/issues-qa/internal/util"
)

const (
	docsURL         = "https://docs.github.com/rest"
	defaultPageSize = 30
	maxPageSize     = 100
)

type errorBody struct {
	Message          string       `json:"message"`
	Errors           []fieldError `json:"errors,omitempty"`
	DocumentationURL string       `json:"documentation_url,omitempty"`
}

type fieldError struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
}

type createRequest struct {
	Title     *string  `json:"title"`
	Body      string   `json:"body"`
	Assignee  string   `json:"assignee"`
	Assignees []string `json:"assignees"`
	Labels    []string `json:"labels"`
	Milestone *int     `json:"milestone"`
}

type updateRequest struct {
	Title       *string   `json:"title"`
	Body        *string   `json:"body"`
	State       *string   `json:"state"`
	StateReason *string   `json:"state_reason"`
	Assignees   *[]string `json:"assignees"`
	Labels      *[]string `json:"labels"`
	Milestone   *int      `json:"milestone"`
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.NoRoute(notFound)
	engine.NoMethod(notFound)

	issues := engine.Group("/repos/:owner/:repo/issues", s.repositoryScope, s.authenticate)
	issues.GET("", s.listIssues)
	issues.POST("", requireLogin, s.createIssue)
	issues.GET("/:number", s.getIssue)
	issues.PATCH("/:number", requireLogin, s.updateIssue)
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorBody{Message: "Not Found", DocumentationURL: docsURL})
}

func (s *Server) repositoryScope(c *gin.Context) {
	if !strings.EqualFold(c.Param("owner"), s.owner) || !strings.EqualFold(c.Param("repo"), s.repo) {
		notFound(c)
		c.Abort()
		return
	}
	c.Next()
}

func validationFailed(c *gin.Context, field, code string) {
	c.JSON(http.StatusUnprocessableEntity, errorBody{
		Message:          "Validation Failed",
		Errors:           []fieldError{{Resource: "Issue", Field: field, Code: code}},
		DocumentationURL: docsURL,
	})
}

// listIssues serves GET /repos/{owner}/{repo}/issues, newest first.
func (s *Server) listIssues(c *gin.Context) {
	state := c.DefaultQuery("state", string(models.IssueStateOpen))
	if state != "all" {
		if _, err := models.ParseIssueState(state); err != nil {
			validationFailed(c, "state", "invalid")
			return
		}
	}

	var labels []string
	if raw := c.Query("labels"); raw != "" {
		labels = strings.Split(raw, ",")
	}

	perPage := queryInt(c, "per_page", defaultPageSize)
	perPage = min(max(perPage, 1), maxPageSize)
	page := max(queryInt(c, "page", 1), 1)

	s.mu.Lock()
	matched := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		if state != "all" && string(issue.State) != state {
			continue
		}
		if !hasLabels(issue, labels) {
			continue
		}
		matched = append(matched, *issue)
	}
	s.mu.Unlock()

	slices.SortFunc(matched, func(a, b models.Issue) int {
		return b.Number - a.Number
	})

	start := min((page-1)*perPage, len(matched))
	end := min(start+perPage, len(matched))

	c.JSON(http.StatusOK, matched[start:end])
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func hasLabels(issue *models.Issue, labels []string) bool {
	names := issue.LabelNames()
	for _, l := range labels {
		if !util.ContainsFold(names, strings.TrimSpace(l)) {
			return false
		}
	}
	return true
}

// createIssue serves POST /repos/{owner}/{repo}/issues.
func (s *Server) createIssue(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "Problems parsing JSON", DocumentationURL: docsURL})
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		validationFailed(c, "title", "missing_field")
		return
	}

	s.mu.Lock()
	issue := *s.createLocked(baseURL(c), c.GetString(ctxLoginKey), req)
	s.mu.Unlock()

	s.log.Debugw("issue created", "number", issue.Number, "title", issue.Title)
	c.JSON(http.StatusCreated, issue)
}

func (s *Server) getIssue(c *gin.Context) {
	issue, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, issue)
}

// updateIssue serves PATCH /repos/{owner}/{repo}/issues/{number}. Only the
// author and collaborators may edit.
func (s *Server) updateIssue(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		notFound(c)
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Message: "Problems parsing JSON", DocumentationURL: docsURL})
		return
	}

	var state models.IssueState
	if req.State != nil {
		if state, err = models.ParseIssueState(*req.State); err != nil {
			validationFailed(c, "state", "invalid")
			return
		}
	}

	login := c.GetString(ctxLoginKey)

	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.issues[number]
	if !ok {
		notFound(c)
		return
	}
	if issue.User.Login != login && !s.isCollaborator(login) {
		c.JSON(http.StatusForbidden, errorBody{Message: "Must have admin rights to Repository.", DocumentationURL: docsURL})
		return
	}

	now := time.Now().UTC()
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			validationFailed(c, "title", "missing_field")
			return
		}
		issue.Title = *req.Title
	}
	if req.Body != nil {
		issue.Body = *req.Body
	}
	if req.Assignees != nil {
		issue.Assignees, issue.Assignee = s.assigneesLocked("", *req.Assignees)
	}
	if req.Labels != nil {
		issue.Labels = makeLabels(*req.Labels)
	}
	if req.Milestone != nil {
		issue.Milestone = makeMilestone(*req.Milestone)
	}
	if req.State != nil && state != issue.State {
		issue.State = state
		switch state {
		case models.IssueStateClosed:
			reason := models.StateReasonCompleted
			if req.StateReason != nil && *req.StateReason == string(models.StateReasonNotPlanned) {
				reason = models.StateReasonNotPlanned
			}
			issue.StateReason = &reason
			issue.ClosedAt = &now
			issue.ClosedBy = s.userLocked(login)
		case models.IssueStateOpen:
			issue.StateReason = util.Ptr(models.StateReasonReopened)
			issue.ClosedAt = nil
			issue.ClosedBy = nil
		}
	}
	issue.UpdatedAt = now

	c.JSON(http.StatusOK, *issue)
}

func (s *Server) lookup(c *gin.Context) (models.Issue, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		notFound(c)
		return models.Issue{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	issue, ok := s.issues[number]
	if !ok {
		notFound(c)
		return models.Issue{}, false
	}
	return *issue, true
}

func baseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}

func (s *Server) createLocked(base, login string, req createRequest) *models.Issue {
	s.nextID++
	number := len(s.issues) + 1
	now := time.Now().UTC()

	repoURL := fmt.Sprintf("%s/repos/%s/%s", base, s.owner, s.repo)
	issueURL := fmt.Sprintf("%s/issues/%d", repoURL, number)

	assignees, assignee := s.assigneesLocked(req.Assignee, req.Assignees)

	issue := &models.Issue{
		URL:               issueURL,
		RepositoryURL:     repoURL,
		CommentsURL:       issueURL + "/comments",
		EventsURL:         issueURL + "/events",
		TimelineURL:       issueURL + "/timeline",
		HTMLURL:           fmt.Sprintf("%s/%s/%s/issues/%d", base, s.owner, s.repo, number),
		ID:                s.nextID,
		NodeID:            "I_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		Number:            number,
		Title:             util.Deref(req.Title),
		Body:              req.Body,
		User:              s.userLocked(login),
		Labels:            makeLabels(req.Labels),
		State:             models.IssueStateOpen,
		Assignee:          assignee,
		Assignees:         assignees,
		Milestone:         makeMilestoneOrNil(req.Milestone),
		CreatedAt:         now,
		UpdatedAt:         now,
		AuthorAssociation: s.association(login),
		Reactions:         &models.Reactions{URL: issueURL + "/reactions"},
	}
	s.issues[number] = issue
	return issue
}

// assigneesLocked keeps only collaborators, the way the API does for callers
// without push access.
func (s *Server) assigneesLocked(single string, many []string) ([]models.User, *models.User) {
	logins := many
	if single != "" && !slices.Contains(logins, single) {
		logins = append([]string{single}, logins...)
	}

	users := make([]models.User, 0, len(logins))
	for _, login := range logins {
		if !s.isCollaborator(login) {
			continue
		}
		users = append(users, *s.userLocked(login))
	}
	if len(users) == 0 {
		return users, nil
	}
	first := users[0]
	return users, &first
}

func (s *Server) userLocked(login string) *models.User {
	if u, ok := s.users[login]; ok {
		return u
	}
	u := &models.User{
		Login:     login,
		ID:        int64(len(s.users) + 1),
		NodeID:    "U_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
		AvatarURL: "https://avatars.githubusercontent.com/u/0",
		Type:      "User",
	}
	s.users[login] = u
	return u
}

func (s *Server) association(login string) string {
	switch {
	case login == s.owner:
		return "OWNER"
	case s.isCollaborator(login):
		return "COLLABORATOR"
	default:
		return "NONE"
	}
}

func makeLabels(names []string) []models.Label {
	labels := make([]models.Label, 0, len(names))
	for i, name := range names {
		labels = append(labels, models.Label{
			ID:     int64(i + 1),
			NodeID: "LA_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
			Name:   name,
			Color:  "ededed",
		})
	}
	return labels
}

func makeMilestone(number int) *models.Milestone {
	return &models.Milestone{
		Number: number,
		Title:  fmt.Sprintf("Milestone %d", number),
		State:  "open",
	}
}

func makeMilestoneOrNil(number *int) *models.Milestone {
	if number == nil {
		return nil
	}
	return makeMilestone(*number)
}
