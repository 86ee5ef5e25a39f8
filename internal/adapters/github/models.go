package github

import "time"

// Repo is a partial GitHub repository document with fields we use
type Repo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description *string   `json:"description"`
	Fork        bool      `json:"fork"`
	Archived    bool      `json:"archived"`
	Private     bool      `json:"private"`
	Stargazers  int       `json:"stargazers_count"`
	ForksCount  int       `json:"forks_count"`
	Language    *string   `json:"language"`
	Topics      []string  `json:"topics"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PushedAt    time.Time `json:"pushed_at"`
}

// User is a partial GitHub user document
type User struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	AvatarURL   string    `json:"avatar_url"`
	HTMLURL     string    `json:"html_url"`
	PublicRepos int       `json:"public_repos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"created_at"`
}

// ContributionDay is one calendar day of the contribution calendar
type ContributionDay struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"contributionCount"`
}

// Calendar is the flattened contribution calendar plus commit totals
type Calendar struct {
	TotalContributions int
	TotalCommits       int
	Days               []ContributionDay
}
