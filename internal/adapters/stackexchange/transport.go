package stackexchange

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	perr "gitfolio/internal/platform/errors"

	"github.com/google/uuid"
)

// Transport fetches one URL and returns the raw JSON body.
// Two implementations exist: a plain HTTP transport and a JSONP-style
// fallback that requests script padding and unwraps it. The fallback mirrors
// the script-injection technique browsers use when cross-origin fetches are
// blocked, kept here for restricted egress environments
type Transport interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// jsonpTimeout bounds a fallback fetch, padding included
const jsonpTimeout = 10 * time.Second

// directTransport is a plain HTTP GET
type directTransport struct {
	http *http.Client
}

func newDirectTransport(timeout time.Duration) *directTransport {
	return &directTransport{http: &http.Client{Timeout: timeout}}
}

// Fetch issues a GET and returns the body on any 2xx status
func (t *directTransport) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "stackexchange new request failed")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "stackexchange request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, perr.RateLimitedf("stackexchange rate limited")
		}
		return nil, perr.Unavailablef("stackexchange status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "stackexchange read body failed")
	}
	return b, nil
}

// jsonpTransport requests callback padding and strips it back off.
// Callback names are unique per request so concurrent fetches cannot
// collide, and every fetch is bounded by jsonpTimeout
type jsonpTransport struct {
	http *http.Client
}

func newJSONPTransport(timeout time.Duration) *jsonpTransport {
	if timeout <= 0 || timeout > jsonpTimeout {
		timeout = jsonpTimeout
	}
	return &jsonpTransport{http: &http.Client{Timeout: timeout}}
}

// Fetch requests url with an added callback parameter and unwraps the padding
func (t *jsonpTransport) Fetch(ctx context.Context, url string) ([]byte, error) {
	cb := callbackName()

	ctx, cancel := context.WithTimeout(ctx, jsonpTimeout)
	defer cancel()

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url+sep+"callback="+cb, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "stackexchange new request failed")
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "stackexchange fallback request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, perr.Unavailablef("stackexchange fallback status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "stackexchange fallback read failed")
	}
	return unwrapPadding(b, cb)
}

// callbackName returns a unique identifier safe to use as a JS function name
func callbackName() string {
	return "cb_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// unwrapPadding strips `cb(...)` (with an optional trailing semicolon) and
// returns the inner JSON
func unwrapPadding(b []byte, cb string) ([]byte, error) {
	s := strings.TrimSpace(string(b))
	s = strings.TrimSuffix(s, ";")
	if !strings.HasPrefix(s, cb) {
		return nil, perr.Newf(perr.ErrorCodeJSON, "stackexchange fallback: missing callback padding")
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, cb))
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, perr.Newf(perr.ErrorCodeJSON, "stackexchange fallback: malformed padding")
	}
	return []byte(s[1 : len(s)-1]), nil
}
