/*
Package main provides the end-to-end suite for the issues API and web UI.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config, Target selection, Ginkgo runner
	├── suite.go         BeforeSuite / AfterSuite: start the target, close created issues
	├── api_tests.go     REST specs (list, create, get, close, invalid payloads and URLs)
	├── ui_tests.go      Browser specs (login, logout, create issue through the UI)
	├── doc.go           This file
	├── fixtures/
	│   ├── fixtures.go    Embedded YAML fixtures, unique title helper
	│   └── fixtures.yaml  Payload and URL cases, UI issue data
	├── infra/
	│   ├── infra.go     Target interface + target names
	│   ├── mock.go      MockTarget (in-process githubmock server)
	│   └── remote.go    RemoteTarget (real API, token from the environment)
	└── service/
	    └── service.go   IssueSvc: client that records created issues for cleanup

# Target

	type Target interface {
	    Name() string
	    Start() / Stop()
	    GitHub() config.GitHub
	    Login() string
	    TokenFor(login) (string, error)
	}

Two implementations:
  - MockTarget serves the issues API in-process. It needs no network and no secrets.
  - RemoteTarget talks to the configured API URL with GITHUB_TOKEN / GH_TOKEN.

Selected via the -target flag ("mock" or "remote").

# Credentials

Nothing secret lives in the repository. The API token comes from
ISSUESQA_GITHUB_TOKEN, GITHUB_TOKEN or GH_TOKEN. The UI specs read
ISSUESQA_CREDENTIALS_USERNAME and ISSUESQA_CREDENTIALS_PASSWORD and are
skipped when either is missing or -ui is not set.

# Cleanup

Every issue created through IssueSvc is recorded. AfterSuite closes the
ones still open with a scheduler pool of cfg.Workers. Pass -keep-issues
to leave them open.

# Running

	go run ./test/e2e                          Mock target, API specs only
	go run ./test/e2e -target remote           Real API
	go run ./test/e2e -target remote -ui       Real API and browser specs
	go run ./test/e2e -ui -engine firefox -headless=false
*/
package main
