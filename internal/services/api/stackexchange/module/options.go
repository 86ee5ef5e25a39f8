package module

import (
	"gitfolio/internal/platform/config"
	"gitfolio/internal/services/api/stackexchange/domain"
	sesvc "gitfolio/internal/services/api/stackexchange/service"
)

// Ports exposed by the Stack Exchange module
type Ports struct {
	Stats domain.ServicePort
}

// Options holds configuration settings for the Stack Exchange module
type Options struct {
	Service sesvc.Config
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	se := cfg.Prefix("STACKEXCHANGE_")
	return Options{
		Service: sesvc.Config{
			AnswerLimit: se.MayInt("ANSWER_LIMIT", 5),
		},
	}
}
