// Package service implements the Stack Exchange profile and answers aggregation
package service

import (
	"context"
	"fmt"
	"sync"

	"gitfolio/internal/adapters/stackexchange"
	"gitfolio/internal/core/excerpt"
	"gitfolio/internal/platform/logger"
	"gitfolio/internal/services/api/stackexchange/domain"
)

// placeholderTitle is substituted when an answer's parent question is missing
// from the batch lookup
const placeholderTitle = "Question not found"

// fallbackTags keeps the profile's tag list populated when the top-tags
// fetch yields nothing
var fallbackTags = []string{"javascript", "typescript", "react", "next.js", "node.js"}

// Config for the aggregation service
type Config struct {
	// AnswerLimit bounds the fetched answer list
	AnswerLimit int
}

// Service aggregates a Stack Exchange profile and answer list
type Service struct {
	se  domain.ClientPort
	cfg Config
	log logger.Logger
}

// New constructs the aggregation service
func New(se domain.ClientPort, cfg Config) *Service {
	if cfg.AnswerLimit <= 0 {
		cfg.AnswerLimit = 5
	}
	return &Service{se: se, cfg: cfg, log: *logger.Named("stackexchange-stats")}
}

// Complete runs the profile and answer fetches concurrently and returns both.
// There is no combined existence gate here; each half degrades independently
// and the route layer decides what counts as no data. An error is returned
// only when both halves failed outright
func (s *Service) Complete(ctx context.Context, userID string) (*domain.Result, error) {
	var (
		profile *domain.Profile
		answers []domain.Answer
		pErr    error
		aErr    error
	)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		profile, pErr = s.fetchProfile(ctx, userID)
	}()

	go func() {
		defer wg.Done()
		answers, aErr = s.fetchAnswers(ctx, userID, s.cfg.AnswerLimit)
	}()

	wg.Wait()

	if pErr != nil && aErr != nil {
		s.log.Error().Err(pErr).AnErr("answers_error", aErr).Str("user_id", userID).Msg("both fetches failed")
		return nil, pErr
	}
	if pErr != nil {
		s.log.Error().Err(pErr).Str("user_id", userID).Msg("profile fetch failed")
	}
	if aErr != nil {
		s.log.Error().Err(aErr).Str("user_id", userID).Msg("answers fetch failed")
	}

	return &domain.Result{Profile: profile, Answers: answers}, nil
}

// fetchProfile fetches the user and their top tags. A missing user yields
// (nil, nil). An empty top-tags result substitutes the fallback list so the
// profile always carries some tag content
func (s *Service) fetchProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	u, err := s.se.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		s.log.Warn().Str("user_id", userID).Msg("no matching user")
		return nil, nil
	}

	tags := make([]string, 0, 5)
	top, err := s.se.TopTags(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("top tags fetch failed, using defaults")
	}
	for _, t := range top {
		tags = append(tags, t.TagName)
	}
	if len(tags) == 0 {
		tags = append(tags, fallbackTags...)
	}

	return &domain.Profile{
		UserID:      u.UserID,
		DisplayName: u.DisplayName,
		Avatar:      u.ProfileImage,
		Reputation:  u.Reputation,
		Badges: domain.Badges{
			Gold:   u.BadgeCounts.Gold,
			Silver: u.BadgeCounts.Silver,
			Bronze: u.BadgeCounts.Bronze,
		},
		TopTags: tags,
		Link:    u.Link,
	}, nil
}

// fetchAnswers fetches the user's top answers and joins each to its parent
// question via one batch call. A missing parent question substitutes a
// placeholder rather than failing the join
func (s *Service) fetchAnswers(ctx context.Context, userID string, limit int) ([]domain.Answer, error) {
	raw, err := s.se.Answers(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	questions, err := s.se.Questions(ctx, questionIDs(raw))
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("question batch fetch failed")
	}
	byID := make(map[int64]stackexchange.Question, len(questions))
	for _, q := range questions {
		byID[q.QuestionID] = q
	}

	out := make([]domain.Answer, 0, len(raw))
	for _, a := range raw {
		q, ok := byID[a.QuestionID]
		if !ok {
			q = stackexchange.Question{Title: placeholderTitle}
		}
		out = append(out, domain.Answer{
			ID:            a.AnswerID,
			QuestionTitle: q.Title,
			QuestionURL:   q.Link,
			AnswerURL:     answerURL(q.Link, a.AnswerID),
			Score:         a.Score,
			Accepted:      a.IsAccepted,
			Excerpt:       excerpt.Make(a.Body),
			Tags:          tagsOrEmpty(q.Tags),
		})
	}
	return out, nil
}

// questionIDs collects the distinct parent question ids in encounter order
func questionIDs(answers []stackexchange.Answer) []int64 {
	seen := make(map[int64]struct{}, len(answers))
	ids := make([]int64, 0, len(answers))
	for _, a := range answers {
		if _, ok := seen[a.QuestionID]; ok {
			continue
		}
		seen[a.QuestionID] = struct{}{}
		ids = append(ids, a.QuestionID)
	}
	return ids
}

// answerURL composes a direct link to the answer as an anchor on the question
func answerURL(questionLink string, answerID int64) string {
	if questionLink == "" {
		return ""
	}
	return fmt.Sprintf("%s#%d", questionLink, answerID)
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
