package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"gitfolio/internal/adapters/stackexchange"
	perr "gitfolio/internal/platform/errors"
)

type fakeClient struct {
	user    *stackexchange.UserItem
	userErr error

	tags    []stackexchange.TopTag
	tagsErr error

	answers    []stackexchange.Answer
	answersErr error

	questions    []stackexchange.Question
	questionsErr error
}

func (f *fakeClient) User(_ context.Context, _ string) (*stackexchange.UserItem, error) {
	return f.user, f.userErr
}

func (f *fakeClient) TopTags(_ context.Context, _ string) ([]stackexchange.TopTag, error) {
	return f.tags, f.tagsErr
}

func (f *fakeClient) Answers(_ context.Context, _ string, limit int) ([]stackexchange.Answer, error) {
	if f.answersErr != nil {
		return nil, f.answersErr
	}
	if len(f.answers) > limit {
		return f.answers[:limit], nil
	}
	return f.answers, nil
}

func (f *fakeClient) Questions(_ context.Context, _ []int64) ([]stackexchange.Question, error) {
	return f.questions, f.questionsErr
}

func someUser() *stackexchange.UserItem {
	return &stackexchange.UserItem{
		UserID:      52251,
		DisplayName: "dev",
		Reputation:  1234,
		BadgeCounts: stackexchange.BadgeCounts{Gold: 1, Silver: 2, Bronze: 3},
		Link:        "https://stackoverflow.com/users/52251/dev",
	}
}

func TestCompleteMissingUserYieldsNilProfile(t *testing.T) {
	t.Parallel()

	svc := New(&fakeClient{}, Config{})
	res, err := svc.Complete(context.Background(), "999999")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.Profile != nil {
		t.Fatalf("expected nil profile, got %+v", res.Profile)
	}
	if len(res.Answers) != 0 {
		t.Fatalf("expected no answers, got %d", len(res.Answers))
	}
}

func TestCompleteProfileTagFallback(t *testing.T) {
	t.Parallel()

	svc := New(&fakeClient{user: someUser()}, Config{})
	res, err := svc.Complete(context.Background(), "52251")
	if err != nil || res.Profile == nil {
		t.Fatalf("Complete: res=%+v err=%v", res, err)
	}
	// an empty top-tags result substitutes the fixed defaults
	if len(res.Profile.TopTags) != len(fallbackTags) {
		t.Fatalf("TopTags=%v want fallback set", res.Profile.TopTags)
	}
	if res.Profile.TopTags[0] != fallbackTags[0] {
		t.Fatalf("TopTags=%v want %v", res.Profile.TopTags, fallbackTags)
	}
}

func TestCompleteProfileRealTags(t *testing.T) {
	t.Parallel()

	f := &fakeClient{
		user: someUser(),
		tags: []stackexchange.TopTag{
			{TagName: "go", AnswerScore: 50},
			{TagName: "http", AnswerScore: 20},
		},
	}
	svc := New(f, Config{})
	res, err := svc.Complete(context.Background(), "52251")
	if err != nil || res.Profile == nil {
		t.Fatalf("Complete: res=%+v err=%v", res, err)
	}
	want := []string{"go", "http"}
	if len(res.Profile.TopTags) != 2 || res.Profile.TopTags[0] != want[0] || res.Profile.TopTags[1] != want[1] {
		t.Fatalf("TopTags=%v want %v", res.Profile.TopTags, want)
	}
	if res.Profile.Badges.Bronze != 3 || res.Profile.Reputation != 1234 {
		t.Fatalf("profile mapping broken: %+v", res.Profile)
	}
}

func TestCompleteAnswersJoin(t *testing.T) {
	t.Parallel()

	f := &fakeClient{
		user: someUser(),
		answers: []stackexchange.Answer{
			{AnswerID: 11, QuestionID: 1, Score: 40, IsAccepted: true, Body: "<p>Use &lt;pre&gt; tags</p>"},
			{AnswerID: 22, QuestionID: 2, Score: 7, Body: "<p>plain</p>"},
		},
		questions: []stackexchange.Question{
			{QuestionID: 1, Title: "How to format code", Link: "https://stackoverflow.com/q/1", Tags: []string{"go"}},
		},
	}
	svc := New(f, Config{AnswerLimit: 5})
	res, err := svc.Complete(context.Background(), "52251")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(res.Answers) != 2 {
		t.Fatalf("answers=%d want 2", len(res.Answers))
	}

	a := res.Answers[0]
	if a.QuestionTitle != "How to format code" {
		t.Fatalf("title=%q", a.QuestionTitle)
	}
	if a.AnswerURL != "https://stackoverflow.com/q/1#11" {
		t.Fatalf("answer url=%q", a.AnswerURL)
	}
	if a.Excerpt != "Use <pre> tags" {
		t.Fatalf("excerpt=%q", a.Excerpt)
	}
	if !a.Accepted || a.Score != 40 {
		t.Fatalf("flags lost: %+v", a)
	}

	// unmatched question id gets the placeholder, not a failure
	b := res.Answers[1]
	if b.QuestionTitle != placeholderTitle {
		t.Fatalf("placeholder title=%q", b.QuestionTitle)
	}
	if b.QuestionURL != "" || b.AnswerURL != "" {
		t.Fatalf("placeholder links should be empty: %+v", b)
	}
	if b.Tags == nil || len(b.Tags) != 0 {
		t.Fatalf("placeholder tags should be empty, not nil: %#v", b.Tags)
	}
}

func TestCompleteAnswersRespectLimitAndExcerptBudget(t *testing.T) {
	t.Parallel()

	long := "<p>" + strings.Repeat("answer body ", 60) + "</p>"
	f := &fakeClient{
		user: someUser(),
		answers: []stackexchange.Answer{
			{AnswerID: 1, QuestionID: 1, Body: long},
			{AnswerID: 2, QuestionID: 1, Body: long},
			{AnswerID: 3, QuestionID: 1, Body: long},
		},
		questions: []stackexchange.Question{
			{QuestionID: 1, Title: "q", Link: "https://stackoverflow.com/q/1", Tags: []string{}},
		},
	}
	svc := New(f, Config{AnswerLimit: 2})
	res, err := svc.Complete(context.Background(), "52251")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(res.Answers) > 2 {
		t.Fatalf("answers=%d exceeds limit", len(res.Answers))
	}
	for _, a := range res.Answers {
		if n := utf8.RuneCountInString(a.Excerpt); n > 183 {
			t.Fatalf("excerpt %d runes exceeds budget", n)
		}
		if a.Excerpt == "" {
			t.Fatalf("excerpt must be non-empty for a non-empty body")
		}
	}
}

func TestCompleteAnswersFailureKeepsProfile(t *testing.T) {
	t.Parallel()

	f := &fakeClient{
		user:       someUser(),
		answersErr: perr.Unavailablef("stackexchange status 503"),
	}
	svc := New(f, Config{})
	res, err := svc.Complete(context.Background(), "52251")
	if err != nil {
		t.Fatalf("one-sided failure must not error: %v", err)
	}
	if res.Profile == nil {
		t.Fatalf("profile should survive an answers failure")
	}
	if len(res.Answers) != 0 {
		t.Fatalf("answers=%d want 0", len(res.Answers))
	}
}

func TestCompleteBothSidesFailing(t *testing.T) {
	t.Parallel()

	f := &fakeClient{
		userErr:    perr.Unavailablef("stackexchange status 503"),
		answersErr: perr.Unavailablef("stackexchange status 503"),
	}
	svc := New(f, Config{})
	if _, err := svc.Complete(context.Background(), "52251"); err == nil {
		t.Fatalf("expected an error when both fetches fail")
	}
}

func TestCompleteQuestionBatchFailureDegradesToPlaceholders(t *testing.T) {
	t.Parallel()

	f := &fakeClient{
		user: someUser(),
		answers: []stackexchange.Answer{
			{AnswerID: 11, QuestionID: 1, Score: 1, Body: "<p>a</p>"},
		},
		questionsErr: perr.Unavailablef("stackexchange status 503"),
	}
	svc := New(f, Config{})
	res, err := svc.Complete(context.Background(), "52251")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(res.Answers) != 1 || res.Answers[0].QuestionTitle != placeholderTitle {
		t.Fatalf("expected placeholder join, got %+v", res.Answers)
	}
}
