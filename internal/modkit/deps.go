// Package modkit provides module wiring and core deps
package modkit

import (
	"gitfolio/internal/adapters/github"
	"gitfolio/internal/adapters/stackexchange"
	"gitfolio/internal/platform/config"
	"gitfolio/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	GitHub *github.Client
	Stack  *stackexchange.Client
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional clients
func (d Deps) ZeroOK() bool { return true }
