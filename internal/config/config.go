package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "ISSUESQA"

	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

var engineAliases = map[string]string{
	"chrome": EngineChromium,
	"edge":   EngineChromium,
}

type Configuration struct {
	GitHub      GitHub      `mapstructure:"github"`
	Browser     Browser     `mapstructure:"browser"`
	Credentials Credentials `mapstructure:"credentials"`
	Mock        Mock        `mapstructure:"mock"`
	Workers     int         `mapstructure:"workers" default:"4"`
	LogLevel    string      `mapstructure:"log_level" default:"info"`
	LogFormat   string      `mapstructure:"log_format" default:"console"`
}

type GitHub struct {
	APIURL     string        `mapstructure:"api_url" default:"https://api.github.com"`
	Owner      string        `mapstructure:"owner" default:"microsoft"`
	Repo       string        `mapstructure:"repo" default:"vscode"`
	Token      string        `mapstructure:"token"`
	Accept     string        `mapstructure:"accept" default:"application/vnd.github.v3+json"`
	Timeout    time.Duration `mapstructure:"timeout" default:"30s"`
	MaxRetries uint          `mapstructure:"max_retries" default:"3"`
}

type Browser struct {
	BaseURL         string        `mapstructure:"base_url" default:"https://github.com"`
	Engine          string        `mapstructure:"engine" default:"chromium"`
	Headless        bool          `mapstructure:"headless" default:"true"`
	ViewportWidth   int           `mapstructure:"viewport_width" default:"1536"`
	ViewportHeight  int           `mapstructure:"viewport_height" default:"800"`
	PageLoadTimeout time.Duration `mapstructure:"page_load_timeout" default:"60s"`
	ElementTimeout  time.Duration `mapstructure:"element_timeout" default:"30s"`
	ScreenshotDir   string        `mapstructure:"screenshot_dir" default:"screenshots"`
}

// NormalizedEngine resolves engine aliases; unknown names are returned lower-cased.
func (b Browser) NormalizedEngine() string {
	e := strings.ToLower(strings.TrimSpace(b.Engine))
	if alias, ok := engineAliases[e]; ok {
		return alias
	}
	return e
}

type Credentials struct {
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	InvalidUsername string `mapstructure:"invalid_username" default:"invalid-user"`
}

// Complete reports whether both username and password are set.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

type Mock struct {
	Addr          string   `mapstructure:"addr" default:"127.0.0.1:0"`
	Collaborators []string `mapstructure:"collaborators"`
}

// NewConfigurationWithDefaults returns a configuration holding only default values.
func NewConfigurationWithDefaults() *Configuration {
	c := &Configuration{}
	if err := defaults.Set(c); err != nil {
		panic(fmt.Sprintf("invalid default tags: %v", err))
	}
	return c
}

var keys = []string{
	"github.api_url", "github.owner", "github.repo", "github.token", "github.accept",
	"github.timeout", "github.max_retries",
	"browser.base_url", "browser.engine", "browser.headless", "browser.viewport_width",
	"browser.viewport_height", "browser.page_load_timeout", "browser.element_timeout",
	"browser.screenshot_dir",
	"credentials.username", "credentials.password", "credentials.invalid_username",
	"mock.addr", "mock.collaborators",
	"workers", "log_level", "log_format",
}

type LoadOption func(*viper.Viper) error

// WithFlags binds flags to configuration keys, keyed by flag name. A flag
// set on the command line wins over the file and the environment; an unset
// one only supplies its default, so flag defaults must match the
// configuration defaults.
func WithFlags(fs *pflag.FlagSet, keyByFlag map[string]string) LoadOption {
	return func(v *viper.Viper) error {
		for name, key := range keyByFlag {
			f := fs.Lookup(name)
			if f == nil {
				return fmt.Errorf("unknown flag %q for %s", name, key)
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
		return nil
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// ISSUESQA_* environment variables and bound flags, in increasing precedence.
func Load(path string, opts ...LoadOption) (*Configuration, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", k, err)
		}
	}
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := NewConfigurationWithDefaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if cfg.GitHub.Token == "" {
		cfg.GitHub.Token = firstEnv("GITHUB_TOKEN", "GH_TOKEN")
	}

	return cfg, nil
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func (c *Configuration) Validate() error {
	var errs []error

	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		errs = append(errs, errors.New("github owner and repo are required"))
	}
	if err := validateURL("github.api_url", c.GitHub.APIURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateURL("browser.base_url", c.Browser.BaseURL); err != nil {
		errs = append(errs, err)
	}
	if c.GitHub.Timeout <= 0 {
		errs = append(errs, errors.New("github.timeout must be positive"))
	}
	if c.Browser.PageLoadTimeout <= 0 || c.Browser.ElementTimeout <= 0 {
		errs = append(errs, errors.New("browser timeouts must be positive"))
	}
	if !slices.Contains([]string{EngineChromium, EngineFirefox, EngineWebKit}, c.Browser.NormalizedEngine()) {
		errs = append(errs, fmt.Errorf("unsupported browser engine %q", c.Browser.Engine))
	}
	if c.Workers <= 0 {
		errs = append(errs, errors.New("workers must be positive"))
	}

	return errors.Join(errs...)
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s: %q is not an absolute URL", name, raw)
	}
	return nil
}

const redacted = "<redacted>"

// DebugMap returns the configuration as a map suitable for logging.
// Secrets are replaced with a placeholder when set.
func (c *Configuration) DebugMap() map[string]any {
	hide := func(s string) string {
		if s == "" {
			return ""
		}
		return redacted
	}

	return map[string]any{
		"github": map[string]any{
			"api_url":     c.GitHub.APIURL,
			"owner":       c.GitHub.Owner,
			"repo":        c.GitHub.Repo,
			"token":       hide(c.GitHub.Token),
			"accept":      c.GitHub.Accept,
			"timeout":     c.GitHub.Timeout.String(),
			"max_retries": c.GitHub.MaxRetries,
		},
		"browser": map[string]any{
			"base_url":          c.Browser.BaseURL,
			"engine":            c.Browser.NormalizedEngine(),
			"headless":          c.Browser.Headless,
			"viewport":          fmt.Sprintf("%dx%d", c.Browser.ViewportWidth, c.Browser.ViewportHeight),
			"page_load_timeout": c.Browser.PageLoadTimeout.String(),
			"element_timeout":   c.Browser.ElementTimeout.String(),
			"screenshot_dir":    c.Browser.ScreenshotDir,
		},
		"credentials": map[string]any{
			"username":         c.Credentials.Username,
			"password":         hide(c.Credentials.Password),
			"invalid_username": c.Credentials.InvalidUsername,
		},
		"mock": map[string]any{
			"addr":          c.Mock.Addr,
			"collaborators": c.Mock.Collaborators,
		},
		"workers":    c.Workers,
		"log_level":  c.LogLevel,
		"log_format": c.LogFormat,
	}
}
