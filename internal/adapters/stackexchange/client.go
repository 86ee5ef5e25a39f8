// Package stackexchange provides a Stack Exchange API 2.3 client with a
// direct transport and a JSONP-unwrapping fallback transport
package stackexchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	perr "gitfolio/internal/platform/errors"
	"gitfolio/internal/platform/logger"
)

const (
	baseURLDefault = "https://api.stackexchange.com/2.3"
	siteDefault    = "stackoverflow"
	defaultTimeout = 10 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL string
	Site    string
	Timeout time.Duration

	// Optional API key. Absence is not fatal, it only lowers the daily quota
	Key string

	// EnableFallback turns on the JSONP fallback transport, which is tried
	// whenever the direct transport fails or returns a non-2xx status
	EnableFallback bool
}

// Client is a minimal Stack Exchange REST client. The transport strategy is
// chosen once at construction, not per call site
type Client struct {
	opts     Options
	primary  Transport
	fallback Transport
	log      logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Site == "" {
		o.Site = siteDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	c := &Client{
		opts:    o,
		primary: newDirectTransport(o.Timeout),
		log:     *logger.Named("stackexchange"),
	}
	if o.EnableFallback {
		c.fallback = newJSONPTransport(o.Timeout)
	}
	return c
}

// HasKey reports whether an API key is configured
func (c *Client) HasKey() bool { return c.opts.Key != "" }

// User fetches a user's public profile. A response with no matching user
// yields (nil, nil), not an error
func (c *Client) User(ctx context.Context, userID string) (*UserItem, error) {
	var w wrapper[UserItem]
	if err := c.getJSON(ctx, "/users/"+url.PathEscape(userID), url.Values{"filter": {"default"}}, &w); err != nil {
		return nil, err
	}
	if len(w.Items) == 0 {
		return nil, nil
	}
	return &w.Items[0], nil
}

// TopTags fetches the user's top answer tags, at most five
func (c *Client) TopTags(ctx context.Context, userID string) ([]TopTag, error) {
	var w wrapper[TopTag]
	err := c.getJSON(ctx, "/users/"+url.PathEscape(userID)+"/top-tags", url.Values{"pagesize": {"5"}}, &w)
	if err != nil {
		return nil, err
	}
	return w.Items, nil
}

// Answers fetches the user's highest-voted answers including bodies
func (c *Client) Answers(ctx context.Context, userID string, limit int) ([]Answer, error) {
	var w wrapper[Answer]
	err := c.getJSON(ctx, "/users/"+url.PathEscape(userID)+"/answers", url.Values{
		"order":    {"desc"},
		"sort":     {"votes"},
		"pagesize": {strconv.Itoa(limit)},
		"filter":   {"withbody"},
	}, &w)
	if err != nil {
		return nil, err
	}
	return w.Items, nil
}

// Questions batch-fetches questions by id in one call
func (c *Client) Questions(ctx context.Context, ids []int64) ([]Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	var w wrapper[Question]
	err := c.getJSON(ctx, "/questions/"+strings.Join(parts, ";"), url.Values{"filter": {"default"}}, &w)
	if err != nil {
		return nil, err
	}
	return w.Items, nil
}

// apiURL composes the full request URL with the site slug and optional key
func (c *Client) apiURL(path string, q url.Values) string {
	if q == nil {
		q = url.Values{}
	}
	q.Set("site", c.opts.Site)
	if c.opts.Key != "" {
		q.Set("key", c.opts.Key)
	}
	return c.opts.BaseURL + path + "?" + q.Encode()
}

// getJSON fetches through the primary transport and, when enabled, retries
// once through the fallback on any failure. The policy is uniform across
// endpoints: a non-2xx status and a transport error both trigger the fallback
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.apiURL(path, q)

	body, err := c.primary.Fetch(ctx, u)
	if err != nil && c.fallback != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("direct transport failed, trying fallback")
		body, err = c.fallback.Fetch(ctx, u)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, fmt.Sprintf("stackexchange decode %s failed", path))
	}
	return nil
}
