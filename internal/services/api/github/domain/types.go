// Package domain holds DTOs and contracts for the GitHub stats service
package domain

import "time"

// Profile is the public profile slice surfaced in the stats payload
type Profile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	AvatarURL   string    `json:"avatarUrl"`
	URL         string    `json:"url"`
	PublicRepos int       `json:"publicRepos"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LanguageRank is one row of the language ranking.
// Percentage is rounded per entry, so rows need not sum to exactly 100
type LanguageRank struct {
	Name       string `json:"name"`
	Bytes      int64  `json:"bytes"`
	Percentage int    `json:"percentage"`
	Color      string `json:"color"`
}

// Stats is the aggregate GitHub payload built per request
type Stats struct {
	TotalRepos          int              `json:"totalRepos"`
	TotalStars          int              `json:"totalStars"`
	TotalForks          int              `json:"totalForks"`
	TotalCommits        int              `json:"totalCommits"`
	YearlyContributions int              `json:"yearlyContributions"`
	CurrentStreak       int              `json:"currentStreak"`
	LongestStreak       int              `json:"longestStreak"`
	Languages           map[string]int64 `json:"languages"`
	TopLanguages        []LanguageRank   `json:"topLanguages"`
	User                *Profile         `json:"user"`
}
