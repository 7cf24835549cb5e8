package core

import (
	"context"
	"fmt"
	"path/filepath"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sourcemod-installer/internal/policies"
	"sourcemod-installer/internal/ports"
	"sourcemod-installer/internal/types"
)

// Planner computes the ordered operation list for one run. It reads
// the target and package trees but never mutates either.
type Planner struct {
	FS     ports.TreeFSPort
	Policy []types.PolicyEntry
}

func NewPlanner(fs ports.TreeFSPort) Planner {
	return Planner{FS: fs, Policy: policies.DirectoryPolicy()}
}

// Plan produces the operations to apply, in execution order. A target
// without an installation root gets a single full-copy operation; an
// existing installation gets per-entry operations following the policy
// table. upgradePlugins gates only the plugin entry and is ignored on
// a first install.
func (p Planner) Plan(ctx context.Context, targetDir string, packageRoot string, upgradePlugins bool) (types.InstallPlan, error) {
	assert.NotEmpty(ctx, targetDir, "target directory must be set")
	assert.NotEmpty(ctx, packageRoot, "package root must be set")

	pkgRoot := policies.InstallRootPath(packageRoot)
	pkgValid, err := p.FS.Exists(pkgRoot)
	if err != nil {
		return types.InstallPlan{}, err
	}
	if !pkgValid {
		return types.InstallPlan{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("package does not contain %s", policies.InstallRoot))
	}

	installed, err := p.FS.Exists(policies.InstallRootPath(targetDir))
	if err != nil {
		return types.InstallPlan{}, err
	}
	if !installed {
		plan := types.InstallPlan{
			FirstInstall: true,
			Operations: []types.Operation{{
				Kind:      types.OperationCopyTree,
				Source:    packageRoot,
				Dest:      targetDir,
				Overwrite: true,
			}},
		}
		log.Debug().Str("target", targetDir).Msg("no existing installation, planning full install")
		return plan, nil
	}

	plan := types.InstallPlan{}
	for _, entry := range p.Policy {
		src := filepath.Join(pkgRoot, entry.Subpath)
		dest := filepath.Join(policies.InstallRootPath(targetDir), entry.Subpath)

		switch entry.Mode {
		case types.MergeModeReplace:
			// The stale tree goes away even when the package has no
			// replacement for it.
			plan.Operations = append(plan.Operations, types.Operation{
				Kind:    types.OperationDeleteTree,
				Subpath: entry.Subpath,
				Dest:    dest,
			})
			srcExists, err := p.FS.Exists(src)
			if err != nil {
				return types.InstallPlan{}, err
			}
			if srcExists {
				plan.Operations = append(plan.Operations, types.Operation{
					Kind:    types.OperationCopyTree,
					Subpath: entry.Subpath,
					Source:  src,
					Dest:    dest,
				})
			}
		case types.MergeModeMerge:
			srcExists, err := p.FS.Exists(src)
			if err != nil {
				return types.InstallPlan{}, err
			}
			if srcExists {
				plan.Operations = append(plan.Operations, types.Operation{
					Kind:      types.OperationCopyTree,
					Subpath:   entry.Subpath,
					Source:    src,
					Dest:      dest,
					Overwrite: true,
				})
			}
		case types.MergeModePluginRoute:
			if !upgradePlugins {
				plan.PluginsSkipped = true
				continue
			}
			plan.Operations = append(plan.Operations, types.Operation{
				Kind:    types.OperationRoutePlugins,
				Subpath: entry.Subpath,
				Source:  src,
				Dest:    dest,
			})
		default:
			return types.InstallPlan{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("unsupported merge mode %q", entry.Mode))
		}
	}
	log.Debug().
		Int("operations", len(plan.Operations)).
		Bool("plugins_skipped", plan.PluginsSkipped).
		Msg("upgrade plan computed")
	return plan, nil
}
