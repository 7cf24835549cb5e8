package core

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sourcemod-installer/internal/ports"
	"sourcemod-installer/internal/types"
)

// Executor applies a computed plan. Operations run strictly in plan
// order; the first failure aborts the run and leaves the steps that
// already completed in place.
type Executor struct {
	FS     ports.TreeFSPort
	Router Router
}

func NewExecutor(fs ports.TreeFSPort) Executor {
	return Executor{FS: fs, Router: NewRouter(fs)}
}

func (e Executor) Execute(ctx context.Context, plan types.InstallPlan) (types.InstallReport, error) {
	report := types.InstallReport{
		FirstInstall:   plan.FirstInstall,
		PluginsSkipped: plan.PluginsSkipped,
	}
	for _, op := range plan.Operations {
		if err := ctx.Err(); err != nil {
			return report, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("installation interrupted").
				WithCause(err)
		}
		switch op.Kind {
		case types.OperationDeleteTree:
			if err := e.FS.DeleteTree(op.Dest); err != nil {
				return report, executionError(op, err)
			}
		case types.OperationCopyTree:
			if err := e.FS.CopyTree(op.Source, op.Dest, op.Overwrite); err != nil {
				return report, executionError(op, err)
			}
		case types.OperationRoutePlugins:
			routes, err := e.routePlugins(op)
			if err != nil {
				return report, err
			}
			report.Plugins = routes
		default:
			return report, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("unsupported operation kind %q", op.Kind))
		}
		report.OperationsApplied++
		log.Debug().Str("kind", string(op.Kind)).Str("dest", op.Dest).Msg("operation applied")
	}
	return report, nil
}

// routePlugins captures the installed-plugin index first, then copies
// incoming plugins one by one. op.Source is the package plugins tree
// and op.Dest the installed one.
func (e Executor) routePlugins(op types.Operation) ([]types.PluginRoute, error) {
	index, err := e.Router.BuildIndex(op.Dest)
	if err != nil {
		return nil, err
	}
	routes, err := e.Router.Route(index, op.Source, op.Dest)
	if err != nil {
		return nil, err
	}
	for _, route := range routes {
		if err := e.FS.EnsureDir(route.Dest); err != nil {
			return nil, executionError(op, err)
		}
		if err := e.FS.CopyFile(route.Source, filepath.Join(route.Dest, route.Name)); err != nil {
			return nil, executionError(op, err)
		}
		log.Debug().
			Str("plugin", route.Name).
			Str("dest", route.Dest).
			Str("outcome", string(route.Outcome)).
			Msg("plugin routed")
	}
	return routes, nil
}

func executionError(op types.Operation, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("failed to apply %s at %s", op.Kind, op.Dest)).
		WithCause(err)
}
