package infra

import (
	"github.com/ghqa/issues-qa/internal/config"
)

// Target abstracts where the suite sends its requests.
// Mock: an in-process githubmock server, no secrets needed.
// Remote: the real API, token taken from the environment.
type Target interface {
	Name() string
	Start() error
	Stop() error
	// GitHub returns the client configuration for the primary user.
	GitHub() config.GitHub
	// Login is the primary user's login, or "" when it is not known.
	Login() string
	// TokenFor returns a token acting as login.
	TokenFor(login string) (string, error)
}

const (
	TargetMock   = "mock"
	TargetRemote = "remote"

	// MockLogin is the primary user of mock runs. It has push access.
	MockLogin = "qa-bot"
)
