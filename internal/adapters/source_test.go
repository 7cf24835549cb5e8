package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcemod-installer/internal/types"
)

type testResolver struct {
	version string
	err     error
	calls   int
}

func (r *testResolver) ResolveBranch(_ context.Context, _ string) (string, error) {
	r.calls++
	return r.version, r.err
}

func TestAcquireDirectoryInPlace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "addons", "sourcemod", "bin", "core.so"), "core")

	source := NewSourceAdapter()
	pkg, err := source.Acquire(t.Context(), types.SourceRequest{ArchivePath: dir})
	require.NoError(t, err)
	assert.Equal(t, dir, pkg.Root)

	require.NoError(t, pkg.Cleanup())
	_, statErr := os.Stat(filepath.Join(dir, "addons", "sourcemod", "bin", "core.so"))
	assert.NoError(t, statErr, "cleanup of a directory source must not delete it")
}

func TestAcquireLocalArchiveExtractsAndCleansUp(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.gz")
	writeTarGz(t, archive, []archiveEntry{
		{name: "addons/sourcemod/LICENSE.txt", content: "GPLv3"},
	})

	source := NewSourceAdapter()
	pkg, err := source.Acquire(t.Context(), types.SourceRequest{ArchivePath: archive})
	require.NoError(t, err)
	assert.NotEqual(t, dir, pkg.Root)
	assert.Equal(t, "GPLv3", readFile(t, filepath.Join(pkg.Root, "addons", "sourcemod", "LICENSE.txt")))

	require.NoError(t, pkg.Cleanup())
	_, statErr := os.Stat(pkg.Root)
	assert.True(t, os.IsNotExist(statErr), "cleanup removes the extraction directory")
}

func TestAcquireMissingArchiveFails(t *testing.T) {
	source := NewSourceAdapter()
	_, err := source.Acquire(t.Context(), types.SourceRequest{
		ArchivePath: filepath.Join(t.TempDir(), "nope.tar.gz"),
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "package archive not found")
}

func TestAcquireUnsupportedArchiveFails(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.rar")
	writeFile(t, archive, "rar")

	source := NewSourceAdapter()
	_, err := source.Acquire(t.Context(), types.SourceRequest{ArchivePath: archive})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestAcquireDownloadsAndExtracts(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.gz")
	writeTarGz(t, archive, []archiveEntry{
		{name: "addons/sourcemod/bin/core.so", content: "core"},
	})
	payload, err := os.ReadFile(archive)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/latest.php", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1.10", r.URL.Query().Get("version"))
		assert.Equal(t, "linux", r.URL.Query().Get("os"))
		http.Redirect(w, r, "/smdrop/1.10/sourcemod-1.10-linux.tar.gz", http.StatusFound)
	})
	mux.HandleFunc("/smdrop/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	download := NewDownloadAdapter(0)
	download.Endpoint = server.URL + "/latest.php"
	source := NewSourceAdapter()
	source.Download = download

	pkg, err := source.Acquire(t.Context(), types.SourceRequest{Version: "1.10", Platform: "Linux"})
	require.NoError(t, err)
	defer func() { require.NoError(t, pkg.Cleanup()) }()

	assert.Equal(t, "core", readFile(t, filepath.Join(pkg.Root, "addons", "sourcemod", "bin", "core.so")))
	assert.Empty(t, pkg.Version, "no branch lookup happened")
}

func TestAcquireResolvesBranchFirst(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.gz")
	writeTarGz(t, archive, []archiveEntry{
		{name: "addons/sourcemod/bin/core.so", content: "dev core"},
	})
	payload, err := os.ReadFile(archive)
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/latest.php", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1.12", r.URL.Query().Get("version"), "resolved version reaches the endpoint")
		http.Redirect(w, r, "/smdrop/1.12/sourcemod-1.12-linux.tar.gz", http.StatusFound)
	})
	mux.HandleFunc("/smdrop/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	download := NewDownloadAdapter(0)
	download.Endpoint = server.URL + "/latest.php"
	resolver := &testResolver{version: "1.12"}
	source := NewSourceAdapter()
	source.Download = download
	source.Resolver = resolver

	pkg, err := source.Acquire(t.Context(), types.SourceRequest{Branch: "dev", Platform: "linux"})
	require.NoError(t, err)
	defer func() { require.NoError(t, pkg.Cleanup()) }()

	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, "1.12", pkg.Version)
}

func TestAcquireLocalArchiveSkipsBranchLookup(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pkg.tar.gz")
	writeTarGz(t, archive, []archiveEntry{
		{name: "addons/sourcemod/LICENSE.txt", content: "GPLv3"},
	})

	resolver := &testResolver{version: "9.9"}
	source := NewSourceAdapter()
	source.Resolver = resolver

	pkg, err := source.Acquire(t.Context(), types.SourceRequest{ArchivePath: archive, Branch: "dev"})
	require.NoError(t, err)
	require.NoError(t, pkg.Cleanup())
	assert.Zero(t, resolver.calls, "a local source never touches the network")
}
