package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"sourcemod-installer/internal/ports"
	"sourcemod-installer/internal/types"
)

// SourceAdapter resolves a source request into a package tree on local
// disk. A local archive path wins over a URL, which wins over the
// version/platform endpoint; a local source never touches the network,
// so a branch flag is ignored alongside one. Downloads and extractions
// land in temporary locations that the returned cleanup removes.
type SourceAdapter struct {
	Download ports.DownloadPort
	Archive  ports.ArchivePort
	Resolver ports.VersionResolverPort
}

func NewSourceAdapter() SourceAdapter {
	return SourceAdapter{
		Download: NewDownloadAdapter(0),
		Archive:  NewArchiveAdapter(),
		Resolver: NewBranchResolverAdapter(),
	}
}

func (a SourceAdapter) Acquire(ctx context.Context, req types.SourceRequest) (ports.Package, error) {
	if req.ArchivePath != "" {
		return a.acquireLocal(req.ArchivePath)
	}

	version := req.Version
	resolved := ""
	if req.URL == "" && req.Branch != "" {
		branchVersion, err := a.Resolver.ResolveBranch(ctx, req.Branch)
		if err != nil {
			return ports.Package{}, err
		}
		version = branchVersion
		resolved = branchVersion
	}

	rawURL := req.URL
	if rawURL == "" {
		rawURL = a.Download.ReleaseURL(version, req.Platform)
	}
	archivePath, err := a.Download.Fetch(ctx, rawURL)
	if err != nil {
		return ports.Package{}, err
	}
	defer func() {
		// The archive is spent once extracted, or once extraction
		// failed.
		if err := os.Remove(archivePath); err != nil {
			log.Debug().Err(err).Str("path", archivePath).Msg("failed to remove downloaded archive")
		}
	}()

	pkg, err := a.extractToTemp(archivePath)
	if err != nil {
		return ports.Package{}, err
	}
	pkg.Version = resolved
	return pkg, nil
}

func (a SourceAdapter) acquireLocal(archivePath string) (ports.Package, error) {
	info, err := os.Stat(archivePath)
	if os.IsNotExist(err) {
		return ports.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("package archive not found: %s", archivePath))
	}
	if err != nil {
		return ports.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat package archive").
			WithCause(err)
	}
	if info.IsDir() {
		log.Debug().Str("root", archivePath).Msg("using package directory in place")
		return ports.Package{Root: archivePath, Cleanup: func() error { return nil }}, nil
	}
	if !a.Archive.Supports(filepath.Base(archivePath)) {
		return ports.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported archive format: %s", filepath.Base(archivePath)))
	}
	return a.extractToTemp(archivePath)
}

func (a SourceAdapter) extractToTemp(archivePath string) (ports.Package, error) {
	dir, err := os.MkdirTemp("", "sourcemod-package-")
	if err != nil {
		return ports.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create extraction directory").
			WithCause(err)
	}
	if err := a.Archive.Unpack(archivePath, dir); err != nil {
		_ = os.RemoveAll(dir)
		return ports.Package{}, err
	}
	log.Debug().Str("archive", filepath.Base(archivePath)).Str("root", dir).Msg("package extracted")
	return ports.Package{Root: dir, Cleanup: func() error { return os.RemoveAll(dir) }}, nil
}

var _ ports.PackageSourcePort = SourceAdapter{}
