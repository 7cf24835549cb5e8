package policies

import (
	"path/filepath"

	"sourcemod-installer/internal/types"
)

const (
	// InstallRoot is the fixed subpath, relative to a server's game
	// directory, that marks a SourceMod installation. Its presence in a
	// package tree is what makes the package installable, and its
	// presence in the target is what distinguishes an upgrade from a
	// first install.
	InstallRoot = "addons/sourcemod"

	// PluginExtension identifies compiled plugin artifacts.
	PluginExtension = ".smx"

	// DisabledDirName is the plugins subdirectory for inactive plugins.
	// Unknown incoming plugins land here so an upgrade never activates
	// code the operator did not choose to run.
	DisabledDirName = "disabled"

	// PluginsSubpath is the policy entry routed per file instead of per
	// tree.
	PluginsSubpath = "plugins"

	// LicenseFileName sits directly under InstallRoot inside a package.
	LicenseFileName = "LICENSE.txt"
)

// DirectoryPolicy returns the merge policy table for upgrades. The
// order is part of the contract: replace entries run before merge
// entries, and plugins run last. Entries are matched against subpaths
// beneath InstallRoot on both sides.
func DirectoryPolicy() []types.PolicyEntry {
	return []types.PolicyEntry{
		{Subpath: "bin", Mode: types.MergeModeReplace},
		{Subpath: filepath.Join("configs", "geoip"), Mode: types.MergeModeReplace},
		{Subpath: filepath.Join("configs", "sql-init-scripts"), Mode: types.MergeModeMerge},
		{Subpath: "extensions", Mode: types.MergeModeMerge},
		{Subpath: "scripting", Mode: types.MergeModeMerge},
		{Subpath: "translations", Mode: types.MergeModeMerge},
		{Subpath: PluginsSubpath, Mode: types.MergeModePluginRoute},
	}
}

// InstallRootPath returns the absolute installation root beneath dir.
func InstallRootPath(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(InstallRoot))
}

// PluginsPath returns the absolute plugins directory beneath dir.
func PluginsPath(dir string) string {
	return filepath.Join(InstallRootPath(dir), PluginsSubpath)
}
