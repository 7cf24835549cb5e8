package app

import "sourcemod-installer/internal/types"

type InstallRequest struct {
	Directory      string
	Platform       string
	Version        string
	Branch         string
	URL            string
	ArchivePath    string
	UpgradePlugins bool
}

type InstallResult struct {
	FirstInstall      bool
	PluginsSkipped    bool
	ResolvedVersion   string
	OperationsApplied int
	Plugins           []types.PluginRoute
}

type PlanRequest struct {
	Directory      string
	Platform       string
	Version        string
	Branch         string
	URL            string
	ArchivePath    string
	UpgradePlugins bool
}

type PlanResult struct {
	ResolvedVersion string
	Plan            types.InstallPlan
	Plugins         []types.PluginRoute
}
