package fixtures

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ghqa/issues-qa/pkg/web"
)

//go:embed fixtures.yaml
var raw []byte

type Issue struct {
	Title  string   `yaml:"title"`
	Body   string   `yaml:"body"`
	Labels []string `yaml:"labels"`
}

type PayloadCase struct {
	Name    string         `yaml:"name"`
	Payload map[string]any `yaml:"payload"`
	Status  int            `yaml:"status"`
}

// Rejected reports whether the API must refuse the payload.
func (c PayloadCase) Rejected() bool {
	return c.Status == http.StatusUnprocessableEntity
}

// URLCase paths may use {api} and {endpoint} placeholders.
type URLCase struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	Status int    `yaml:"status"`
}

type UIIssue struct {
	Type          web.IssueType `yaml:"type"`
	web.IssueInfo `yaml:",inline"`
}

type Fixtures struct {
	NewIssue        Issue         `yaml:"new_issue"`
	RequestTemplate Issue         `yaml:"request_template"`
	InvalidPayloads []PayloadCase `yaml:"invalid_payloads"`
	InvalidURLs     []URLCase     `yaml:"invalid_urls"`
	UIIssue         UIIssue       `yaml:"ui_issue"`
}

func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

func MustLoad() *Fixtures {
	f, err := Load()
	if err != nil {
		panic(err)
	}
	return f
}

// Unique appends a short random suffix so reruns never collide.
func Unique(title string) string {
	return fmt.Sprintf("%s [%s]", title, uuid.NewString()[:8])
}

// Expand resolves the placeholders of a URLCase path.
func (c URLCase) Expand(apiURL, endpoint string) string {
	return strings.NewReplacer(
		"{api}", strings.TrimSuffix(apiURL, "/"),
		"{endpoint}", endpoint,
	).Replace(c.Path)
}

// WithUniqueTitle returns a copy of the payload whose title, if any, is unique.
func (c PayloadCase) WithUniqueTitle() map[string]any {
	out := make(map[string]any, len(c.Payload))
	for k, v := range c.Payload {
		out[k] = v
	}
	if t, ok := out["title"].(string); ok {
		out["title"] = Unique(t)
	}
	return out
}
