// Package api provides the HTTP API for the application
package api

import (
	"gitfolio/internal/platform/config"
	"gitfolio/internal/platform/logger"
	phttp "gitfolio/internal/platform/net/http"

	"gitfolio/internal/adapters/github"
	"gitfolio/internal/adapters/stackexchange"
	modkit "gitfolio/internal/modkit"
	"gitfolio/internal/modkit/httpkit"
	"gitfolio/internal/modkit/module"

	githubmod "gitfolio/internal/services/api/github/module"
	metamod "gitfolio/internal/services/api/meta/module"
	stackmod "gitfolio/internal/services/api/stackexchange/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Logger *logger.Logger
	GitHub *github.Client
	Stack  *stackexchange.Client
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{
		Cfg:    opt.Config,
		GitHub: opt.GitHub,
		Stack:  opt.Stack,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		metamod.New(deps),
		githubmod.New(deps),
		stackmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
