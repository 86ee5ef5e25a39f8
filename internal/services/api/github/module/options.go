package module

import (
	"gitfolio/internal/platform/config"
	"gitfolio/internal/services/api/github/domain"
	ghsvc "gitfolio/internal/services/api/github/service"
)

// Ports exposed by the GitHub stats module
type Ports struct {
	Stats domain.ServicePort
}

// Options holds configuration settings for the GitHub stats module
type Options struct {
	Service ghsvc.Config
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	gh := cfg.Prefix("GITHUB_")
	return Options{
		Service: ghsvc.Config{
			Login:         gh.MustString("USER"),
			LangRepoLimit: gh.MayInt("LANG_REPO_LIMIT", 10),
			LangEvery:     gh.MayDuration("LANG_EVERY", 0),
			TopN:          gh.MayInt("TOP_LANGUAGES", 6),
		},
	}
}
