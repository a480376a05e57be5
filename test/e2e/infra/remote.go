package infra

import (
	"errors"
	"fmt"

	"github.com/ghqa/issues-qa/internal/config"
)

// RemoteTarget points the suite at a real API. Nothing is started.
type RemoteTarget struct {
	cfg   config.GitHub
	login string
}

func NewRemoteTarget(cfg config.GitHub, login string) *RemoteTarget {
	return &RemoteTarget{cfg: cfg, login: login}
}

func (r *RemoteTarget) Name() string {
	return TargetRemote
}

func (r *RemoteTarget) Start() error {
	if r.cfg.Token == "" {
		return errors.New("remote target needs a token: set GITHUB_TOKEN, GH_TOKEN or ISSUESQA_GITHUB_TOKEN")
	}
	return nil
}

func (r *RemoteTarget) Stop() error {
	return nil
}

func (r *RemoteTarget) GitHub() config.GitHub {
	return r.cfg
}

func (r *RemoteTarget) Login() string {
	return r.login
}

// TokenFor only knows the configured user.
func (r *RemoteTarget) TokenFor(login string) (string, error) {
	if login != "" && login == r.login {
		return r.cfg.Token, nil
	}
	return "", fmt.Errorf("no token for %q on the remote target", login)
}
