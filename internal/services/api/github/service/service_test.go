package service

import (
	"context"
	"testing"
	"time"

	"gitfolio/internal/adapters/github"
	perr "gitfolio/internal/platform/errors"
)

type fakeClient struct {
	user    github.User
	userErr error

	repos    []github.Repo
	reposErr error

	langs     map[string]map[string]int64
	langErr   error
	langCalls []string

	cal    *github.Calendar
	calErr error
}

func (f *fakeClient) User(_ context.Context, _ string) (github.User, error) {
	return f.user, f.userErr
}

func (f *fakeClient) Repos(_ context.Context, _ string) ([]github.Repo, error) {
	return f.repos, f.reposErr
}

func (f *fakeClient) Languages(_ context.Context, _, repo string) (map[string]int64, error) {
	f.langCalls = append(f.langCalls, repo)
	if f.langErr != nil {
		return nil, f.langErr
	}
	return f.langs[repo], nil
}

func (f *fakeClient) ContributionCalendar(_ context.Context, _ string) (*github.Calendar, error) {
	return f.cal, f.calErr
}

func strptr(s string) *string { return &s }

func repo(name string, stars, forks int) github.Repo {
	return github.Repo{Name: name, Description: strptr(name + " description"), Stargazers: stars, ForksCount: forks}
}

func testConfig() Config {
	return Config{Login: "octocat", LangRepoLimit: 10, LangEvery: time.Nanosecond, TopN: 6}
}

func TestStatsFiltersRepositories(t *testing.T) {
	t.Parallel()

	f := &fakeClient{
		user: github.User{Login: "octocat"},
		repos: []github.Repo{
			repo("keep-a", 3, 1),
			{Name: "forked", Fork: true, Description: strptr("x")},
			{Name: "attic", Archived: true, Description: strptr("x")},
			{Name: "secret", Private: true, Description: strptr("x")},
			{Name: "undocumented", Description: nil},
			{Name: "blank-desc", Description: strptr("")},
			repo("keep-b", 2, 0),
		},
	}
	svc := New(f, testConfig())

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st == nil {
		t.Fatal("Stats returned nil for a live account")
	}
	if st.TotalRepos != 2 {
		t.Fatalf("TotalRepos=%d want 2", st.TotalRepos)
	}
	if st.TotalStars != 5 || st.TotalForks != 1 {
		t.Fatalf("totals stars=%d forks=%d want 5/1", st.TotalStars, st.TotalForks)
	}
}

func TestStatsExistenceGate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		f    *fakeClient
	}{
		{"no user", &fakeClient{
			userErr: perr.NotFoundf("github resource not found"),
			repos:   []github.Repo{repo("present", 1, 0)},
		}},
		{"no repos", &fakeClient{
			user: github.User{Login: "octocat"},
		}},
		{"repo fetch failed", &fakeClient{
			user:     github.User{Login: "octocat"},
			reposErr: perr.Unavailablef("github server error 502"),
		}},
	}

	for _, c := range cases {
		svc := New(c.f, testConfig())
		st, err := svc.Stats(context.Background())
		if err != nil {
			t.Fatalf("%s: unexpected error %v", c.name, err)
		}
		if st != nil {
			t.Fatalf("%s: expected nil stats, got %+v", c.name, st)
		}
	}
}

func TestStatsDegradesWithoutCalendar(t *testing.T) {
	t.Parallel()

	f := &fakeClient{
		user:   github.User{Login: "octocat"},
		repos:  []github.Repo{repo("only", 4, 2)},
		calErr: github.ErrNoToken,
	}
	svc := New(f, testConfig())

	st, err := svc.Stats(context.Background())
	if err != nil || st == nil {
		t.Fatalf("Stats: st=%v err=%v", st, err)
	}
	if st.CurrentStreak != 0 || st.LongestStreak != 0 || st.YearlyContributions != 0 || st.TotalCommits != 0 {
		t.Fatalf("streak fields should degrade to zero: %+v", st)
	}
	// the rest of the aggregate must still be populated
	if st.TotalStars != 4 || st.User == nil {
		t.Fatalf("non-streak fields missing: %+v", st)
	}
}

func TestStatsMergesStreaks(t *testing.T) {
	t.Parallel()

	today := time.Now().UTC().Format(dayLayout)
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(dayLayout)

	f := &fakeClient{
		user:  github.User{Login: "octocat"},
		repos: []github.Repo{repo("only", 0, 0)},
		cal: &github.Calendar{
			TotalContributions: 42,
			TotalCommits:       40,
			Days: []github.ContributionDay{
				{Date: yesterday, Count: 2},
				{Date: today, Count: 1},
			},
		},
	}
	svc := New(f, testConfig())

	st, err := svc.Stats(context.Background())
	if err != nil || st == nil {
		t.Fatalf("Stats: st=%v err=%v", st, err)
	}
	if st.YearlyContributions != 42 || st.TotalCommits != 40 {
		t.Fatalf("calendar totals: %+v", st)
	}
	if st.CurrentStreak != 2 || st.LongestStreak != 2 {
		t.Fatalf("streaks current=%d longest=%d want 2/2", st.CurrentStreak, st.LongestStreak)
	}
}

func TestStatsLanguageMergeIsBoundedAndFaultTolerant(t *testing.T) {
	t.Parallel()

	repos := make([]github.Repo, 0, 12)
	langs := map[string]map[string]int64{}
	for i := 0; i < 12; i++ {
		r := repo(string(rune('a'+i)), 0, 0)
		repos = append(repos, r)
		langs[r.Name] = map[string]int64{"Go": 10}
	}

	f := &fakeClient{
		user:  github.User{Login: "octocat"},
		repos: repos,
		langs: langs,
	}
	cfg := testConfig()
	cfg.LangRepoLimit = 10
	svc := New(f, cfg)

	st, err := svc.Stats(context.Background())
	if err != nil || st == nil {
		t.Fatalf("Stats: st=%v err=%v", st, err)
	}
	if got := len(f.langCalls); got != 10 {
		t.Fatalf("language fetches=%d want 10", got)
	}
	if st.Languages["Go"] != 100 {
		t.Fatalf("Go bytes=%d want 100", st.Languages["Go"])
	}
}

func TestStatsLanguageFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	f := &fakeClient{
		user:    github.User{Login: "octocat"},
		repos:   []github.Repo{repo("a", 1, 0), repo("b", 2, 0)},
		langErr: perr.RateLimitedf("github rate limited"),
	}
	svc := New(f, testConfig())

	st, err := svc.Stats(context.Background())
	if err != nil || st == nil {
		t.Fatalf("Stats: st=%v err=%v", st, err)
	}
	if len(f.langCalls) != 2 {
		t.Fatalf("loop aborted after %d calls", len(f.langCalls))
	}
	if len(st.Languages) != 0 {
		t.Fatalf("expected empty histogram, got %v", st.Languages)
	}
	if len(st.TopLanguages) != 0 {
		t.Fatalf("expected empty ranking, got %v", st.TopLanguages)
	}
}
