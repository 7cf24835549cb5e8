package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sourcemod-installer/internal/core"
	"sourcemod-installer/internal/types"
)

// Plan computes the operations an install run would apply, without
// touching the target. Plugin routes are resolved against the current
// installed-plugin index, so the preview matches what an immediate
// install would do.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	directory := strings.TrimSpace(req.Directory)
	if directory == "" {
		return PlanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("target directory is required")
	}
	emitHints(checkSourceHints(req.ArchivePath, req.URL, req.Branch))

	pkg, err := s.Source.Acquire(ctx, sourceRequest(req.Platform, req.Version, req.Branch, req.URL, req.ArchivePath))
	if err != nil {
		return PlanResult{}, err
	}
	defer func() {
		if err := pkg.Cleanup(); err != nil {
			log.Debug().Err(err).Msg("failed to clean up package source")
		}
	}()

	planner := core.NewPlanner(s.FS)
	plan, err := planner.Plan(ctx, directory, pkg.Root, req.UpgradePlugins)
	if err != nil {
		return PlanResult{}, err
	}

	router := core.NewRouter(s.FS)
	var routes []types.PluginRoute
	for _, op := range plan.Operations {
		if op.Kind != types.OperationRoutePlugins {
			continue
		}
		index, err := router.BuildIndex(op.Dest)
		if err != nil {
			return PlanResult{}, err
		}
		routes, err = router.Route(index, op.Source, op.Dest)
		if err != nil {
			return PlanResult{}, err
		}
	}
	return PlanResult{
		ResolvedVersion: pkg.Version,
		Plan:            plan,
		Plugins:         routes,
	}, nil
}
