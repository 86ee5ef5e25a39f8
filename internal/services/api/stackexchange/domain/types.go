// Package domain defines the Stack Exchange view types and ports
package domain

// Badges holds badge counts by tier
type Badges struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// Profile is the display view of a Stack Exchange user
type Profile struct {
	UserID      int64    `json:"userId"`
	DisplayName string   `json:"displayName"`
	Avatar      string   `json:"avatar"`
	Reputation  int      `json:"reputation"`
	Badges      Badges   `json:"badges"`
	TopTags     []string `json:"topTags"`
	Link        string   `json:"link"`
}

// Answer is the display view of one answer joined to its parent question
type Answer struct {
	ID            int64    `json:"id"`
	QuestionTitle string   `json:"questionTitle"`
	QuestionURL   string   `json:"questionUrl"`
	AnswerURL     string   `json:"answerUrl"`
	Score         int      `json:"score"`
	Accepted      bool     `json:"accepted"`
	Excerpt       string   `json:"excerpt"`
	Tags          []string `json:"tags"`
}

// Result carries both halves of the aggregation. The halves are
// independently optional; only the route layer decides what "no data" means
type Result struct {
	Profile *Profile `json:"profile"`
	Answers []Answer `json:"answers"`
}
