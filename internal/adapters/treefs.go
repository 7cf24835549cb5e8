package adapters

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"sourcemod-installer/internal/ports"
)

// TreeFSAdapter performs the merge engine's filesystem work with plain
// OS calls. Copies follow symlinks and carry file content and mode,
// not ownership or timestamps.
type TreeFSAdapter struct{}

func NewTreeFSAdapter() TreeFSAdapter {
	return TreeFSAdapter{}
}

func (a TreeFSAdapter) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to stat path").
		WithCause(err)
}

func (a TreeFSAdapter) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create directory").
			WithCause(err)
	}
	return nil
}

// DeleteTree removes path and everything under it. A missing path is
// not an error.
func (a TreeFSAdapter) DeleteTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to delete tree").
			WithCause(err)
	}
	return nil
}

func (a TreeFSAdapter) CopyTree(src string, dest string, overwrite bool) error {
	info, err := os.Stat(src)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat copy source").
			WithCause(err)
	}
	if !info.IsDir() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("copy source is not a directory")
	}
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg("copy destination already exists")
		} else if !os.IsNotExist(err) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to stat copy destination").
				WithCause(err)
		}
	}
	if err := a.copyDir(src, dest); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy tree").
			WithCause(err)
	}
	return nil
}

func (a TreeFSAdapter) CopyFile(src string, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat copy source").
			WithCause(err)
	}
	if err := a.copyFile(src, dest, info.Mode().Perm()); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy file").
			WithCause(err)
	}
	return nil
}

func (a TreeFSAdapter) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read file").
			WithCause(err)
	}
	return data, nil
}

// ScanFiles walks root and returns the sorted slash-relative paths of
// every file whose name ends in ext. A missing root yields no paths.
func (a TreeFSAdapter) ScanFiles(root string, ext string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}
	var rels []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan tree").
			WithCause(err)
	}
	sort.Strings(rels)
	return rels, nil
}

func (a TreeFSAdapter) copyDir(src string, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())
		// Stat instead of the dirent so symlinked content copies as
		// content.
		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}
		if err := removeMismatch(destPath, info.IsDir()); err != nil {
			return err
		}
		if info.IsDir() {
			if err := a.copyDir(srcPath, destPath); err != nil {
				return err
			}
			continue
		}
		if err := a.copyFile(srcPath, destPath, info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

func (a TreeFSAdapter) copyFile(src string, dest string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// removeMismatch clears the destination when a file sits where a
// directory must go, or the other way around.
func removeMismatch(dest string, wantDir bool) error {
	info, err := os.Lstat(dest)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() == wantDir {
		return nil
	}
	return os.RemoveAll(dest)
}

var _ ports.TreeFSPort = TreeFSAdapter{}
