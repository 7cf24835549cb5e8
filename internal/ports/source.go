package ports

import (
	"context"

	"sourcemod-installer/internal/types"
)

// Package is an acquired package tree on local disk. Cleanup removes
// whatever temporary state backs it and must be called when the run
// ends, on every path. Version is set when a branch lookup resolved it.
type Package struct {
	Root    string
	Version string
	Cleanup func() error
}

// PackageSourcePort turns a source request into a package tree.
type PackageSourcePort interface {
	Acquire(ctx context.Context, req types.SourceRequest) (Package, error)
}

// DownloadPort fetches release archives over HTTP.
type DownloadPort interface {
	// Fetch downloads rawURL to a temporary file whose name keeps the
	// suffix of the final, post-redirect URL, and returns its path.
	Fetch(ctx context.Context, rawURL string) (string, error)
	// ReleaseURL builds the download endpoint for a version/platform
	// pair.
	ReleaseURL(version string, platform string) string
}

// VersionResolverPort maps a release branch name to the version it
// currently serves.
type VersionResolverPort interface {
	ResolveBranch(ctx context.Context, branch string) (string, error)
}

// ArchivePort unpacks package archives.
type ArchivePort interface {
	// Supports reports whether the filename carries a recognized
	// archive suffix.
	Supports(name string) bool
	Unpack(archivePath string, destDir string) error
}
