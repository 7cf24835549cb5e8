// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"archive/tar"
	"compress/gzip"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteTree materializes a slash-relative path to content mapping under
// root, creating parent directories as needed.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// TreeManifest walks root and returns every regular file as a
// slash-relative path to content mapping.
func TreeManifest(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return files
}

// WriteTarGz builds a gzipped tarball at archivePath from a
// slash-relative path to content mapping. Entries are written in
// sorted order.
func WriteTarGz(t *testing.T, archivePath string, files map[string]string) {
	t.Helper()
	out, err := os.Create(archivePath)
	require.NoError(t, err)
	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		content := files[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Size:     int64(len(content)),
			Mode:     0644,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, out.Close())
}

// PackageFiles returns the file set of a minimal but representative
// release package, keyed by slash-relative path. The label lands in
// every file body so different builds can be told apart.
func PackageFiles(label string) map[string]string {
	return map[string]string{
		"addons/sourcemod/LICENSE.txt":                         "GNU GENERAL PUBLIC LICENSE " + label,
		"addons/sourcemod/bin/sourcemod.logic.so":              "logic " + label,
		"addons/sourcemod/configs/geoip/GeoIP.dat":             "geoip " + label,
		"addons/sourcemod/configs/sql-init-scripts/create.sql": "schema " + label,
		"addons/sourcemod/extensions/sdktools.ext.so":          "sdktools " + label,
		"addons/sourcemod/plugins/basecommands.smx":            "basecommands " + label,
		"addons/sourcemod/plugins/nominations.smx":             "nominations " + label,
		"addons/sourcemod/scripting/basecommands.sp":           "basecommands source " + label,
		"addons/sourcemod/translations/core.phrases.txt":       "core phrases " + label,
		"addons/metamod/sourcemod.vdf":                         "loader " + label,
		"cfg/sourcemod/sourcemod.cfg":                          "server defaults " + label,
	}
}
