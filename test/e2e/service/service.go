package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/internal/config"
	"github.com/ghqa/issues-qa/internal/models"
	"github.com/ghqa/issues-qa/pkg/github"
	"github.com/ghqa/issues-qa/pkg/scheduler"
)

// IssueSvc wraps the REST client and remembers every issue it created so
// the suite can close them when it ends.
type IssueSvc struct {
	*github.Client
	workers int

	mu      sync.Mutex
	created []int
}

func NewIssueService(cfg config.GitHub, workers int) (*IssueSvc, error) {
	zap.S().Info("Initializing IssueService...")
	client, err := github.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize issue service: %w", err)
	}
	return &IssueSvc{Client: client, workers: workers}, nil
}

// WithToken returns a service acting with token, sharing the tracking list.
func (s *IssueSvc) WithToken(cfg config.GitHub, token string) (*IssueSvc, error) {
	cfg.Token = token
	client, err := github.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &IssueSvc{Client: client, workers: s.workers}, nil
}

func (s *IssueSvc) track(number int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, number)
}

// Created returns the numbers of the issues created so far.
func (s *IssueSvc) Created() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.created)
}

func (s *IssueSvc) CreateIssue(ctx context.Context, req models.IssueRequest) (*models.Issue, error) {
	issue, err := s.Client.CreateIssue(ctx, req)
	if err != nil {
		return nil, err
	}
	s.track(issue.Number)
	return issue, nil
}

func (s *IssueSvc) CreateIssueWithTitle(ctx context.Context, title, body string) (int, error) {
	issue, err := s.CreateIssue(ctx, models.NewIssueRequest(title, body))
	if err != nil {
		return 0, err
	}
	return issue.Number, nil
}

func (s *IssueSvc) PostPayload(ctx context.Context, target string, payload any) (int, *models.Issue, error) {
	status, issue, err := s.Client.PostPayload(ctx, target, payload)
	if err == nil && issue != nil && issue.Number > 0 {
		s.track(issue.Number)
	}
	return status, issue, err
}

// Cleanup closes every tracked issue that is still open.
func (s *IssueSvc) Cleanup(ctx context.Context) error {
	numbers := s.Created()
	if len(numbers) == 0 {
		return nil
	}

	sched := scheduler.New(s.workers)
	defer sched.Close()

	works := make([]scheduler.Work[models.IssueState], 0, len(numbers))
	for _, n := range numbers {
		works = append(works, func(ctx context.Context) (models.IssueState, error) {
			state, err := s.IssueState(ctx, n)
			if err != nil || state == models.IssueStateClosed {
				return state, err
			}
			return s.SetIssueState(ctx, n, models.IssueStateClosed)
		})
	}

	_, err := scheduler.Run(ctx, sched, works...)
	zap.S().Infow("closed issues created by the suite", "count", len(numbers), "error", err)
	return err
}
