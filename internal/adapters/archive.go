package adapters

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sourcemod-installer/internal/ports"
)

// archiveSuffixes lists the package formats the release server ships,
// in detection order.
var archiveSuffixes = []string{".zip", ".tar.gz", ".tgz", ".tar.bz2", ".tar"}

// ArchiveAdapter unpacks package archives. Format detection follows
// the filename suffix, which the download step preserves from the
// final URL.
type ArchiveAdapter struct{}

func NewArchiveAdapter() ArchiveAdapter {
	return ArchiveAdapter{}
}

func (a ArchiveAdapter) Supports(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func (a ArchiveAdapter) Unpack(archivePath string, destDir string) error {
	lower := strings.ToLower(archivePath)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return a.unpackZip(archivePath, destDir)
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return a.unpackTar(archivePath, destDir, gzipDecompressor)
	case strings.HasSuffix(lower, ".tar.bz2"):
		return a.unpackTar(archivePath, destDir, bzip2Decompressor)
	case strings.HasSuffix(lower, ".tar"):
		return a.unpackTar(archivePath, destDir, plainDecompressor)
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported archive format: %s", filepath.Base(archivePath)))
	}
}

type decompressor func(io.Reader) (io.Reader, error)

func gzipDecompressor(r io.Reader) (io.Reader, error) {
	return gzip.NewReader(r)
}

func bzip2Decompressor(r io.Reader) (io.Reader, error) {
	return bzip2.NewReader(r), nil
}

func plainDecompressor(r io.Reader) (io.Reader, error) {
	return r, nil
}

func (a ArchiveAdapter) unpackTar(archivePath string, destDir string, decompress decompressor) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return unpackError(archivePath, err)
	}
	defer file.Close()
	raw, err := decompress(file)
	if err != nil {
		return unpackError(archivePath, err)
	}
	reader := tar.NewReader(raw)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return unpackError(archivePath, err)
		}
		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return unpackError(archivePath, err)
		}
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return unpackError(archivePath, err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, reader, entryMode(header.Mode)); err != nil {
				return unpackError(archivePath, err)
			}
		default:
			// Links and special files do not occur in release
			// packages; skip rather than fail on exotics.
			continue
		}
	}
}

func (a ArchiveAdapter) unpackZip(archivePath string, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return unpackError(archivePath, err)
	}
	defer reader.Close()
	for _, entry := range reader.File {
		target, err := safeJoin(destDir, entry.Name)
		if err != nil {
			return unpackError(archivePath, err)
		}
		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return unpackError(archivePath, err)
			}
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return unpackError(archivePath, err)
		}
		mode := entry.Mode().Perm()
		if mode == 0 {
			mode = 0644
		}
		err = writeEntry(target, rc, mode)
		rc.Close()
		if err != nil {
			return unpackError(archivePath, err)
		}
	}
	return nil
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin resolves an archive entry name beneath dir and rejects
// absolute names and names that escape dir.
func safeJoin(dir string, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("archive entry has absolute path: %s", name)
	}
	target := filepath.Join(dir, cleaned)
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return target, nil
}

func entryMode(mode int64) os.FileMode {
	perm := os.FileMode(mode).Perm()
	if perm == 0 {
		perm = 0644
	}
	return perm
}

func unpackError(archivePath string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("failed to unpack %s", filepath.Base(archivePath))).
		WithCause(err)
}

var _ ports.ArchivePort = ArchiveAdapter{}
