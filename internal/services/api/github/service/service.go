// Package service implements the GitHub stats aggregation
package service

import (
	"context"
	stderrs "errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"gitfolio/internal/adapters/github"
	"gitfolio/internal/platform/logger"
	"gitfolio/internal/services/api/github/domain"
)

// Config for the stats service
type Config struct {
	// Login is the account whose activity is aggregated
	Login string

	// LangRepoLimit bounds how many repositories get a per-repo language
	// fetch, capping outbound call volume
	LangRepoLimit int

	// LangEvery spaces successive language fetches to stay under the
	// upstream rate limiter
	LangEvery time.Duration

	// TopN bounds the language ranking
	TopN int
}

// Service aggregates profile, repository, and contribution data into Stats
type Service struct {
	gh  domain.ClientPort
	cfg Config
	log logger.Logger
	lim *rate.Limiter
	now func() time.Time
}

// New constructs the stats service
func New(gh domain.ClientPort, cfg Config) *Service {
	if cfg.LangRepoLimit <= 0 {
		cfg.LangRepoLimit = 10
	}
	if cfg.LangEvery <= 0 {
		cfg.LangEvery = 100 * time.Millisecond
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 6
	}
	return &Service{
		gh:  gh,
		cfg: cfg,
		log: *logger.Named("github-stats"),
		lim: rate.NewLimiter(rate.Every(cfg.LangEvery), 1),
		now: time.Now,
	}
}

// Stats fetches profile, repositories, and the contribution calendar in
// three independent fault domains and merges them. Only the combined
// absence of user and repository data aborts the aggregate; everything
// else degrades to zero values
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	var (
		user  *github.User
		repos []github.Repo
		cal   *github.Calendar
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		u, err := s.gh.User(ctx, s.cfg.Login)
		if err != nil {
			s.log.Error().Err(err).Str("login", s.cfg.Login).Msg("user fetch failed")
			return
		}
		user = &u
	}()

	go func() {
		defer wg.Done()
		repos = s.listRepositories(ctx)
	}()

	go func() {
		defer wg.Done()
		cal = s.fetchCalendar(ctx)
	}()

	wg.Wait()

	if user == nil || len(repos) == 0 {
		s.log.Error().Str("login", s.cfg.Login).Msg("could not fetch user or repository data")
		return nil, nil
	}

	st := &domain.Stats{
		TotalRepos: len(repos),
		User: &domain.Profile{
			Login:       user.Login,
			Name:        user.Name,
			Bio:         user.Bio,
			Location:    user.Location,
			AvatarURL:   user.AvatarURL,
			URL:         user.HTMLURL,
			PublicRepos: user.PublicRepos,
			Followers:   user.Followers,
			Following:   user.Following,
			CreatedAt:   user.CreatedAt,
		},
	}
	for _, r := range repos {
		st.TotalStars += r.Stargazers
		st.TotalForks += r.ForksCount
	}

	st.Languages = s.mergeLanguages(ctx, repos)
	st.TopLanguages = rankLanguages(st.Languages, s.cfg.TopN)

	// a nil calendar degrades to zeros, never to a null field
	if cal != nil {
		today := s.now().UTC().Format(dayLayout)
		st.YearlyContributions = cal.TotalContributions
		st.TotalCommits = cal.TotalCommits
		st.CurrentStreak = currentStreak(cal.Days, today)
		st.LongestStreak = longestStreak(cal.Days)
	}

	return st, nil
}

// listRepositories fetches and filters the account's repositories.
// Forks, archived, private, and description-less repositories are dropped.
// Any failure yields an empty list, never an error
func (s *Service) listRepositories(ctx context.Context) []github.Repo {
	all, err := s.gh.Repos(ctx, s.cfg.Login)
	if err != nil {
		s.log.Error().Err(err).Str("login", s.cfg.Login).Msg("repository fetch failed")
		return nil
	}
	out := make([]github.Repo, 0, len(all))
	for _, r := range all {
		if r.Fork || r.Archived || r.Private {
			continue
		}
		if r.Description == nil || *r.Description == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// fetchCalendar fetches the contribution calendar, degrading to nil.
// A missing token is expected and only warned about
func (s *Service) fetchCalendar(ctx context.Context) *github.Calendar {
	cal, err := s.gh.ContributionCalendar(ctx, s.cfg.Login)
	if err != nil {
		if stderrs.Is(err, github.ErrNoToken) {
			s.log.Warn().Msg("no token configured, contribution stats unavailable")
		} else {
			s.log.Error().Err(err).Msg("contribution fetch failed")
		}
		return nil
	}
	return cal
}

// mergeLanguages sums per-repo language bytes into one histogram over at
// most the first LangRepoLimit repositories. Fetches are spaced by the rate
// limiter, and a failure on one repository does not abort the loop
func (s *Service) mergeLanguages(ctx context.Context, repos []github.Repo) map[string]int64 {
	hist := map[string]int64{}
	n := len(repos)
	if n > s.cfg.LangRepoLimit {
		n = s.cfg.LangRepoLimit
	}
	for _, r := range repos[:n] {
		if err := s.lim.Wait(ctx); err != nil {
			s.log.Warn().Err(err).Msg("language fetch loop cancelled")
			break
		}
		langs, err := s.gh.Languages(ctx, s.cfg.Login, r.Name)
		if err != nil {
			s.log.Error().Err(err).Str("repo", r.Name).Msg("language fetch failed")
			continue
		}
		for lang, bytes := range langs {
			hist[lang] += bytes
		}
	}
	return hist
}
