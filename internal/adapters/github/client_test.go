package github

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "gitfolio/internal/platform/errors"
)

func TestClientHeadersAndStatusMapping(t *testing.T) {
	t.Parallel()

	var gotAuth, gotAccept string
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(status)
		if status == http.StatusOK {
			fmt.Fprint(w, `{"login":"octocat"}`)
		}
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Token: "t0ken"})

	u, err := c.User(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if u.Login != "octocat" {
		t.Fatalf("login=%q", u.Login)
	}
	if gotAuth != "Bearer t0ken" {
		t.Fatalf("auth header=%q", gotAuth)
	}
	if gotAccept != "application/vnd.github+json" {
		t.Fatalf("accept header=%q", gotAccept)
	}

	cases := []struct {
		status int
		code   perr.ErrorCode
	}{
		{http.StatusNotFound, perr.ErrorCodeNotFound},
		{http.StatusForbidden, perr.ErrorCodeTooManyRequests},
		{http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests},
		{http.StatusBadGateway, perr.ErrorCodeUnavailable},
	}
	for _, cse := range cases {
		status = cse.status
		_, err := c.User(context.Background(), "octocat")
		if err == nil {
			t.Fatalf("status %d: expected error", cse.status)
		}
		if !perr.IsCode(err, cse.code) {
			t.Fatalf("status %d: code=%v want %v", cse.status, perr.CodeOf(err), cse.code)
		}
	}
}

func TestClientWithoutTokenOmitsAuth(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"login":"octocat"}`)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	if c.HasToken() {
		t.Fatalf("HasToken=true without a token")
	}
	if _, err := c.User(context.Background(), "octocat"); err != nil {
		t.Fatalf("User: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}

func TestLanguagesNotFoundIsEmpty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	langs, err := c.Languages(context.Background(), "octocat", "ghost-repo")
	if err != nil {
		t.Fatalf("404 must not be an error for languages: %v", err)
	}
	if len(langs) != 0 {
		t.Fatalf("langs=%v want empty", langs)
	}
}

func TestReposRequestShape(t *testing.T) {
	t.Parallel()

	var gotPath, gotSort, gotPer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSort = r.URL.Query().Get("sort")
		gotPer = r.URL.Query().Get("per_page")
		fmt.Fprint(w, `[{"name":"a"},{"name":"b"}]`)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	repos, err := c.Repos(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("Repos: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("repos=%+v", repos)
	}
	if gotPath != "/users/octocat/repos" || gotSort != "updated" || gotPer != "100" {
		t.Fatalf("request shape path=%q sort=%q per_page=%q", gotPath, gotSort, gotPer)
	}
}

func TestContributionCalendarRequiresToken(t *testing.T) {
	t.Parallel()

	c := NewClient(Options{})
	_, err := c.ContributionCalendar(context.Background(), "octocat")
	if !stderrs.Is(err, ErrNoToken) {
		t.Fatalf("err=%v want ErrNoToken", err)
	}
}

func TestContributionCalendarFlattensWeeks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("graphql method=%s", r.Method)
		}
		fmt.Fprint(w, `{"data":{"user":{"contributionsCollection":{
			"totalCommitContributions":30,
			"restrictedContributionsCount":12,
			"contributionCalendar":{
				"totalContributions":50,
				"weeks":[
					{"contributionDays":[{"contributionCount":1,"date":"2026-08-24"},{"contributionCount":0,"date":"2026-08-25"}]},
					{"contributionDays":[{"contributionCount":3,"date":"2026-08-26"}]}
				]}}}}}`)
	}))
	defer srv.Close()

	c := NewClient(Options{GraphQLURL: srv.URL, Token: "t"})
	cal, err := c.ContributionCalendar(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("ContributionCalendar: %v", err)
	}
	if cal.TotalContributions != 50 {
		t.Fatalf("TotalContributions=%d", cal.TotalContributions)
	}
	// commit total folds in restricted contributions
	if cal.TotalCommits != 42 {
		t.Fatalf("TotalCommits=%d want 42", cal.TotalCommits)
	}
	if len(cal.Days) != 3 || cal.Days[2].Date != "2026-08-26" || cal.Days[2].Count != 3 {
		t.Fatalf("days=%+v", cal.Days)
	}
}

func TestContributionCalendarGraphQLError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"Could not resolve to a User"}]}`)
	}))
	defer srv.Close()

	c := NewClient(Options{GraphQLURL: srv.URL, Token: "t"})
	if _, err := c.ContributionCalendar(context.Background(), "nobody"); err == nil {
		t.Fatalf("expected an error for a graphql error payload")
	}
}
