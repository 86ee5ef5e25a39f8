package github

import (
	"context"
	"encoding/json"
	stderrs "errors"

	perr "gitfolio/internal/platform/errors"
)

// ErrNoToken is returned by ContributionCalendar when no bearer token is
// configured. The GraphQL endpoint rejects anonymous queries, so callers
// treat this as "calendar unavailable" rather than a failure
var ErrNoToken = stderrs.New("github: graphql requires a token")

// contributionQuery asks for the contribution calendar and commit totals
const contributionQuery = `query($login: String!) {
  user(login: $login) {
    contributionsCollection {
      totalCommitContributions
      restrictedContributionsCount
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            contributionCount
            date
          }
        }
      }
    }
  }
}`

// calendarResponse mirrors the GraphQL response shape we query
type calendarResponse struct {
	Data struct {
		User struct {
			ContributionsCollection struct {
				TotalCommitContributions     int `json:"totalCommitContributions"`
				RestrictedContributionsCount int `json:"restrictedContributionsCount"`
				ContributionCalendar         struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []ContributionDay `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ContributionCalendar fetches the user's daily contribution calendar via
// one GraphQL query and flattens the weeks into a single day list
func (c *Client) ContributionCalendar(ctx context.Context, login string) (*Calendar, error) {
	if !c.HasToken() {
		return nil, ErrNoToken
	}

	body, err := json.Marshal(map[string]any{
		"query":     contributionQuery,
		"variables": map[string]string{"login": login},
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "github marshal graphql body failed")
	}

	resp, err := c.post(ctx, c.opts.GraphQLURL, body)
	if err != nil {
		return nil, err
	}

	var out calendarResponse
	if err := c.decode(resp, "/graphql", &out); err != nil {
		return nil, err
	}
	if len(out.Errors) > 0 {
		return nil, perr.Newf(perr.ErrorCodeUnknown, "github graphql error: %s", out.Errors[0].Message)
	}

	cc := out.Data.User.ContributionsCollection
	cal := &Calendar{
		TotalContributions: cc.ContributionCalendar.TotalContributions,
		TotalCommits:       cc.TotalCommitContributions + cc.RestrictedContributionsCount,
	}
	for _, w := range cc.ContributionCalendar.Weeks {
		cal.Days = append(cal.Days, w.ContributionDays...)
	}
	return cal, nil
}
