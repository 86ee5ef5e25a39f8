package stackexchange

// wrapper is the common envelope every Stack Exchange response uses
type wrapper[T any] struct {
	Items []T `json:"items"`
}

// BadgeCounts holds badge totals by tier
type BadgeCounts struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// UserItem is a partial Stack Exchange user document
type UserItem struct {
	UserID       int64       `json:"user_id"`
	DisplayName  string      `json:"display_name"`
	ProfileImage string      `json:"profile_image"`
	Reputation   int         `json:"reputation"`
	BadgeCounts  BadgeCounts `json:"badge_counts"`
	Link         string      `json:"link"`
}

// TopTag is one entry of a user's top-tags ranking
type TopTag struct {
	TagName     string `json:"tag_name"`
	AnswerScore int    `json:"answer_score"`
}

// Answer is a partial answer document, fetched with bodies
type Answer struct {
	AnswerID   int64  `json:"answer_id"`
	QuestionID int64  `json:"question_id"`
	Score      int    `json:"score"`
	IsAccepted bool   `json:"is_accepted"`
	Body       string `json:"body"`
}

// Question is a partial question document used to resolve answer parents
type Question struct {
	QuestionID int64    `json:"question_id"`
	Title      string   `json:"title"`
	Link       string   `json:"link"`
	Tags       []string `json:"tags"`
}
