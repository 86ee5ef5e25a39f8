package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	perr "gitfolio/internal/platform/errors"
)

// User fetches a user's public profile
func (c *Client) User(ctx context.Context, login string) (User, error) {
	var out User
	err := c.getJSON(ctx, fmt.Sprintf("/users/%s", login), &out)
	return out, err
}

// Repos fetches up to 100 of the user's repositories sorted by most recent update
func (c *Client) Repos(ctx context.Context, login string) ([]Repo, error) {
	var out []Repo
	err := c.getJSON(ctx, fmt.Sprintf("/users/%s/repos?sort=updated&per_page=100", login), &out)
	return out, err
}

// Languages fetches the byte-count-per-language map for one repository.
// A 404 means the repository has no detectable languages, which is expected
// and yields an empty map with no error
func (c *Client) Languages(ctx context.Context, login, repo string) (map[string]int64, error) {
	out := map[string]int64{}
	err := c.getJSON(ctx, fmt.Sprintf("/repos/%s/%s/languages", login, repo), &out)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return map[string]int64{}, nil
		}
		return nil, err
	}
	return out, nil
}

// getJSON fetches path and decodes the body into out
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	return c.decode(resp, path, out)
}

func (c *Client) decode(resp *http.Response, path string, out any) error {
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("github close body failed")
		}
	}()
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "github read body failed")
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "github decode failed")
	}
	return nil
}
