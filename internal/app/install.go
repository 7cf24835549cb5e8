package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sourcemod-installer/internal/core"
	"sourcemod-installer/internal/policies"
	"sourcemod-installer/internal/types"
)

// Install acquires the package, plans against the target directory and
// applies the plan. A first install goes through the license gate
// before anything is written; a declined or unanswerable prompt aborts
// with the target untouched.
func (s Service) Install(ctx context.Context, req InstallRequest) (InstallResult, error) {
	directory := strings.TrimSpace(req.Directory)
	if directory == "" {
		return InstallResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("target directory is required")
	}
	emitHints(checkSourceHints(req.ArchivePath, req.URL, req.Branch))

	pkg, err := s.Source.Acquire(ctx, sourceRequest(req.Platform, req.Version, req.Branch, req.URL, req.ArchivePath))
	if err != nil {
		return InstallResult{}, err
	}
	defer func() {
		if err := pkg.Cleanup(); err != nil {
			log.Debug().Err(err).Msg("failed to clean up package source")
		}
	}()

	planner := core.NewPlanner(s.FS)
	plan, err := planner.Plan(ctx, directory, pkg.Root, req.UpgradePlugins)
	if err != nil {
		return InstallResult{}, err
	}

	if plan.FirstInstall {
		if err := s.resolveConsent(pkg.Root); err != nil {
			return InstallResult{}, err
		}
		log.Info().Str("target", directory).Msg("performing full install")
	}

	executor := core.NewExecutor(s.FS)
	report, err := executor.Execute(ctx, plan)
	if err != nil {
		return InstallResult{}, err
	}
	return InstallResult{
		FirstInstall:      report.FirstInstall,
		PluginsSkipped:    report.PluginsSkipped,
		ResolvedVersion:   pkg.Version,
		OperationsApplied: report.OperationsApplied,
		Plugins:           report.Plugins,
	}, nil
}

// resolveConsent runs the license gate against the package's bundled
// license text.
func (s Service) resolveConsent(packageRoot string) error {
	licensePath := filepath.Join(policies.InstallRootPath(packageRoot), policies.LicenseFileName)
	licenseText, err := s.FS.ReadFile(licensePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package is missing its license file").
			WithCause(err)
	}
	gate := core.NewConsentGate(s.Pager, s.Confirm)
	allowed, err := gate.Resolve(string(licenseText))
	if err != nil {
		return err
	}
	if !allowed {
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("license not accepted, installation cancelled")
	}
	return nil
}

func sourceRequest(platform string, version string, branch string, url string, archivePath string) types.SourceRequest {
	return types.SourceRequest{
		Platform:    platform,
		Version:     version,
		Branch:      branch,
		URL:         url,
		ArchivePath: archivePath,
	}
}
