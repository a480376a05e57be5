package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/internal/config"
	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
)

type Client struct {
	rest       *api.RESTClient
	apiURL     string
	owner      string
	repo       string
	maxRetries uint
	newBackOff func() backoff.BackOff
	log        *zap.SugaredLogger
}

type Option func(*clientOptions)

type clientOptions struct {
	transport  http.RoundTripper
	newBackOff func() backoff.BackOff
}

// WithTransport sets the transport used below the authentication layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// WithBackOff sets the backoff policy factory for retried requests.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(o *clientOptions) {
		o.newBackOff = fn
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	return b
}

// anonymousToken satisfies go-gh's token requirement; bearerTransport strips
// it so the request carries no credentials.
const anonymousToken = "anonymous"

// NewClient returns a client for the issues endpoint of cfg.Owner/cfg.Repo.
// When cfg.Token is empty the token is resolved from GH_TOKEN, GITHUB_TOKEN
// or the gh CLI configuration; without any the client is anonymous.
func NewClient(cfg config.GitHub, opts ...Option) (*Client, error) {
	o := clientOptions{
		transport:  http.DefaultTransport,
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", cfg.APIURL, err)
	}

	headers := map[string]string{}
	if cfg.Accept != "" {
		headers["Accept"] = cfg.Accept
	}

	host := hostFor(u)
	token := cfg.Token
	if token == "" {
		token, _ = auth.TokenForHost(host)
	}

	authToken := token
	if authToken == "" {
		authToken = anonymousToken
	}

	rest, err := api.NewRESTClient(api.ClientOptions{
		Host:      host,
		AuthToken: authToken,
		Headers:   headers,
		Timeout:   cfg.Timeout,
		Transport: &bearerTransport{token: token, base: o.transport},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize github client: %w", err)
	}

	return &Client{
		rest:       rest,
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		owner:      cfg.Owner,
		repo:       cfg.Repo,
		maxRetries: cfg.MaxRetries,
		newBackOff: o.newBackOff,
		log:        zap.S().Named("github"),
	}, nil
}

// hostFor maps the REST root to the host name go-gh authenticates against.
func hostFor(u *url.URL) string {
	if u.Hostname() == "api.github.com" {
		return "github.com"
	}
	return u.Host
}

// bearerTransport sends the token as a bearer credential on every request,
// including absolute URLs outside the configured host. Without a token the
// Authorization header is removed.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if t.token == "" {
		r.Header.Del("Authorization")
	} else {
		r.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.base.RoundTrip(r)
}

// IssuesEndpoint returns {api}/repos/{owner}/{repo}/issues.
func (c *Client) IssuesEndpoint() string {
	return fmt.Sprintf("%s/repos/%s/%s/issues", c.apiURL, c.owner, c.repo)
}

func (c *Client) IssueURL(number int) string {
	return fmt.Sprintf("%s/%d", c.IssuesEndpoint(), number)
}

// do sends one request and decodes a 2xx body into out. Server errors and
// rate limiting are retried; every other failure is returned at once.
// The returned status is set on failure too when the server answered.
func (c *Client) do(ctx context.Context, method, target string, payload, out any) (int, error) {
	var data []byte
	if payload != nil {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return 0, fmt.Errorf("failed to encode payload: %w", err)
		}
	}

	op := func() (int, error) {
		var body io.Reader
		if data != nil {
			body = bytes.NewReader(data)
		}

		resp, err := c.rest.RequestWithContext(ctx, method, target, body)
		if err != nil {
			err = translate(err)
			if srvErrors.IsRetryable(err) {
				return srvErrors.StatusCode(err), err
			}
			return srvErrors.StatusCode(err), backoff.Permanent(err)
		}
		defer resp.Body.Close()

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
				return resp.StatusCode, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
			}
		}
		return resp.StatusCode, nil
	}

	status, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.maxRetries+1),
		backoff.WithNotify(func(err error, d time.Duration) {
			c.log.Warnw("request failed, retrying", "method", method, "url", target, "in", d, "error", err)
		}),
	)
	if err != nil {
		if code := srvErrors.StatusCode(err); code != 0 {
			status = code
		}
		return status, err
	}
	return status, nil
}

// translate turns go-gh HTTP errors into APIError values.
func translate(err error) error {
	var httpErr *api.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	fieldErrors := make([]srvErrors.FieldError, 0, len(httpErr.Errors))
	for _, item := range httpErr.Errors {
		fieldErrors = append(fieldErrors, srvErrors.FieldError{
			Resource: item.Resource,
			Field:    item.Field,
			Code:     item.Code,
			Message:  item.Message,
		})
	}

	var requestURL string
	if httpErr.RequestURL != nil {
		requestURL = httpErr.RequestURL.String()
	}

	// go-gh appends a line per field error to the top-level message.
	message, _, _ := strings.Cut(httpErr.Message, "\n")

	return srvErrors.NewAPIError(httpErr.StatusCode, message, requestURL, fieldErrors...)
}
