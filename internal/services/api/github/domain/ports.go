package domain

import (
	"context"

	"gitfolio/internal/adapters/github"
)

// ClientPort is the slice of the GitHub adapter the service consumes,
// kept as an interface so tests can fake the upstream
type ClientPort interface {
	User(ctx context.Context, login string) (github.User, error)
	Repos(ctx context.Context, login string) ([]github.Repo, error)
	Languages(ctx context.Context, login, repo string) (map[string]int64, error)
	ContributionCalendar(ctx context.Context, login string) (*github.Calendar, error)
}

// ServicePort is consumed by handlers and other modules.
// Stats returns (nil, nil) when the minimum viable data (user + repositories)
// could not be fetched; callers map that to "no data"
type ServicePort interface {
	Stats(ctx context.Context) (*Stats, error)
}
