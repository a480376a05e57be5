package infra

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/internal/config"
	"github.com/ghqa/issues-qa/pkg/github/githubmock"
)

// MockTarget serves the issues API in-process.
type MockTarget struct {
	cfg    config.GitHub
	addr   string
	server *githubmock.Server
	token  string
}

// NewMockTarget prepares a mock for cfg.Owner/cfg.Repo listening on addr.
// MockLogin and collaborators get push access.
func NewMockTarget(cfg config.GitHub, addr string, collaborators ...string) *MockTarget {
	return &MockTarget{
		cfg:    cfg,
		addr:   addr,
		server: githubmock.New(cfg.Owner, cfg.Repo, githubmock.WithCollaborators(append([]string{MockLogin}, collaborators...)...)),
	}
}

func (m *MockTarget) Name() string {
	return TargetMock
}

func (m *MockTarget) Start() error {
	if err := m.server.Start(m.addr); err != nil {
		return fmt.Errorf("starting github mock: %w", err)
	}

	token, err := m.server.IssueToken(MockLogin)
	if err != nil {
		return err
	}
	m.token = token

	zap.S().Named("infra").Infow("mock target ready", "url", m.server.URL(), "login", MockLogin)
	return nil
}

func (m *MockTarget) Stop() error {
	return m.server.Stop()
}

func (m *MockTarget) GitHub() config.GitHub {
	c := m.cfg
	c.APIURL = m.server.URL()
	c.Token = m.token
	return c
}

func (m *MockTarget) Login() string {
	return MockLogin
}

func (m *MockTarget) TokenFor(login string) (string, error) {
	return m.server.IssueToken(login)
}

// Server exposes the mock for assertions on stored state.
func (m *MockTarget) Server() *githubmock.Server {
	return m.server
}
