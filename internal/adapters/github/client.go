// Package github provides a small GitHub REST v3 + GraphQL v4 client for the
// portfolio stats aggregator
package github

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	perr "gitfolio/internal/platform/errors"
	"gitfolio/internal/platform/logger"
)

const (
	baseURLDefault    = "https://api.github.com"
	graphqlURLDefault = "https://api.github.com/graphql"
	defaultTimeout    = 10 * time.Second
	defaultUA         = "gitfolio-api"
)

// Options configures the Client
type Options struct {
	BaseURL    string
	GraphQLURL string
	UserAgent  string
	Timeout    time.Duration

	// Optional bearer token. Absence is not fatal, it only lowers the
	// unauthenticated rate limit and disables the contribution calendar
	Token string
}

// Client is a minimal GitHub client. Failures are returned to callers, which
// absorb them per the degrade-not-abort policy of the stats service
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.GraphQLURL == "" {
		o.GraphQLURL = graphqlURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("github"),
		now:  time.Now,
	}
}

// HasToken reports whether a bearer token is configured
func (c *Client) HasToken() bool { return c.opts.Token != "" }

// get issues a GET against the REST base URL and returns the open response.
// path must include any query string. 404 surfaces as a not-found error so
// callers can distinguish expected absence from transport trouble
func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, c.opts.BaseURL+path, nil)
}

// post issues a POST with a JSON body against an absolute URL
func (c *Client) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "github new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "github request failed")
	}

	rem, reset := parseRateHeaders(resp.Header)
	c.log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Int("rate_remaining", rem).
		Time("rate_reset", reset).
		Msg("github http response")

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return resp, nil
	case resp.StatusCode == http.StatusNotFound:
		_ = drainAndClose(resp.Body)
		return nil, perr.NotFoundf("github resource not found")
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		// GitHub signals both primary and secondary rate limits here
		_ = drainAndClose(resp.Body)
		c.log.Warn().Int("rate_remaining", rem).Time("rate_reset", reset).Msg("github rate limited")
		return nil, perr.RateLimitedf("github rate limited")
	case resp.StatusCode >= 500:
		_ = drainAndClose(resp.Body)
		return nil, perr.Unavailablef("github server error %d", resp.StatusCode)
	default:
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		_ = resp.Body.Close()
		return nil, perr.Newf(perr.ErrorCodeUnknown, "github unexpected status %d body %s", resp.StatusCode, string(tail))
	}
}
