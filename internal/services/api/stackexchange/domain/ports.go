package domain

import (
	"context"

	"gitfolio/internal/adapters/stackexchange"
)

// ClientPort is the upstream surface the service consumes
type ClientPort interface {
	User(ctx context.Context, userID string) (*stackexchange.UserItem, error)
	TopTags(ctx context.Context, userID string) ([]stackexchange.TopTag, error)
	Answers(ctx context.Context, userID string, limit int) ([]stackexchange.Answer, error)
	Questions(ctx context.Context, ids []int64) ([]stackexchange.Question, error)
}

// ServicePort is the service surface consumed by the http layer.
// Complete never fails on a missing user; a Result with a nil Profile and no
// Answers is the "no data" signal
type ServicePort interface {
	Complete(ctx context.Context, userID string) (*Result, error)
}
