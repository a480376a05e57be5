// Package config defines the configuration structure for issues-qa.
//
// Configuration is organized into logical sections (GitHub, Browser,
// Credentials, Mock) plus a few top-level knobs. Defaults come from struct
// tags applied with creasty/defaults; a YAML file and ISSUESQA_* environment
// variables are layered on top through viper.
//
// # Configuration Structure
//
//	Configuration
//	├── GitHub         - REST endpoint, repository and token
//	├── Browser        - Web target, engine and timeouts
//	├── Credentials    - Web login accounts
//	├── Mock           - Offline API server
//	├── Workers        - Scheduler workers for bulk calls
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # GitHub Configuration
//
//	┌────────────┬─────────────────────────────────┬──────────────────────────────────┐
//	│ Field      │ Default                         │ Description                      │
//	├────────────┼─────────────────────────────────┼──────────────────────────────────┤
//	│ APIURL     │ "https://api.github.com"        │ REST API root                    │
//	│ Owner      │ "microsoft"                     │ Repository owner                 │
//	│ Repo       │ "vscode"                        │ Repository name                  │
//	│ Token      │ $GITHUB_TOKEN / $GH_TOKEN       │ Bearer token (hidden in logs)    │
//	│ Accept     │ "application/vnd.github.v3+json"│ Accept header                    │
//	│ Timeout    │ 30s                             │ Per-request timeout              │
//	│ MaxRetries │ 3                               │ Retries on 5xx and rate limits   │
//	└────────────┴─────────────────────────────────┴──────────────────────────────────┘
//
// # Browser Configuration
//
//	┌─────────────────┬──────────────────────┬──────────────────────────────────────┐
//	│ Field           │ Default              │ Description                          │
//	├─────────────────┼──────────────────────┼──────────────────────────────────────┤
//	│ BaseURL         │ "https://github.com" │ Web application root                 │
//	│ Engine          │ "chromium"           │ chromium, firefox or webkit          │
//	│ Headless        │ true                 │ Run without a window                 │
//	│ ViewportWidth   │ 1536                 │ Page width                           │
//	│ ViewportHeight  │ 800                  │ Page height                          │
//	│ PageLoadTimeout │ 60s                  │ Navigation timeout                   │
//	│ ElementTimeout  │ 30s                  │ Element wait timeout                 │
//	│ ScreenshotDir   │ "screenshots"        │ Where screenshots are written        │
//	└─────────────────┴──────────────────────┴──────────────────────────────────────┘
//
// "chrome" and "edge" are accepted as aliases of chromium.
//
// # Environment
//
// Every key maps to an upper-cased variable with dots replaced by
// underscores:
//
//	ISSUESQA_GITHUB_OWNER=octo-org
//	ISSUESQA_BROWSER_HEADLESS=false
//	ISSUESQA_MOCK_COLLABORATORS=alice,bob
//
// # Flags
//
// WithFlags binds command line flags to keys. Flags set on the command line
// win over the file and the environment:
//
//	cfg, err := config.Load(path, config.WithFlags(fs, map[string]string{
//	    "owner": "github.owner",
//	}))
//
// # Debug Logging
//
// DebugMap returns the configuration with the token and password redacted:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
