package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcemod-installer/tests/testutil"
)

func runInstaller(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := testutil.RepoRoot(t)
	cmd := exec.Command("go", append([]string{"run", "./cmd/sourcemod-installer"}, args...)...)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func packageArchive(t *testing.T, label string) string {
	t.Helper()
	archive := filepath.Join(t.TempDir(), "sourcemod-"+label+"-linux.tar.gz")
	testutil.WriteTarGz(t, archive, testutil.PackageFiles(label))
	return archive
}

func TestUpgradeCommandE2E(t *testing.T) {
	archive := packageArchive(t, "1.12.1")
	target := t.TempDir()
	testutil.WriteTree(t, target, map[string]string{
		"addons/sourcemod/bin/sourcemod.logic.so":   "logic 1.12.0",
		"addons/sourcemod/plugins/basecommands.smx": "basecommands 1.12.0",
	})

	out, err := runInstaller(t, "install", target, "--archive", archive)
	require.NoError(t, err, out)

	assert.Contains(t, out, "basecommands.smx copied to plugins")
	assert.Contains(t, out, "Upgrade complete.")

	got := testutil.TreeManifest(t, target)
	assert.Equal(t, "logic 1.12.1", got["addons/sourcemod/bin/sourcemod.logic.so"])
	assert.Equal(t, "basecommands 1.12.1", got["addons/sourcemod/plugins/basecommands.smx"])
	assert.Equal(t, "nominations 1.12.1", got["addons/sourcemod/plugins/disabled/nominations.smx"])
}

func TestFirstInstallDeclinesWithoutTerminalE2E(t *testing.T) {
	archive := packageArchive(t, "1.12.1")
	target := t.TempDir()

	out, err := runInstaller(t, "install", target, "--archive", archive)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, out)
	assert.Equal(t, 1, exitErr.ExitCode(), out)
	assert.Contains(t, out, "license not accepted")

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries, "a declined install must leave the target untouched")
}

func TestPlanCommandE2E(t *testing.T) {
	archive := packageArchive(t, "1.12.1")
	target := t.TempDir()
	testutil.WriteTree(t, target, map[string]string{
		"addons/sourcemod/bin/sourcemod.logic.so": "logic 1.12.0",
	})

	out, err := runInstaller(t, "plan", target, "--archive", archive)
	require.NoError(t, err, out)

	assert.Contains(t, out, "delete-tree")
	assert.Contains(t, out, "copy-tree")
	assert.Contains(t, out, "route-plugins")
	assert.Contains(t, out, "plugin basecommands.smx -> plugins/disabled (new, disabled)")

	got := testutil.TreeManifest(t, target)
	require.Len(t, got, 1, "planning must not write anything")
	assert.Equal(t, "logic 1.12.0", got["addons/sourcemod/bin/sourcemod.logic.so"])
}

func TestPlanCommandYAMLE2E(t *testing.T) {
	archive := packageArchive(t, "1.12.1")
	target := t.TempDir()

	out, err := runInstaller(t, "plan", target, "--archive", archive, "--format", "yaml")
	require.NoError(t, err, out)

	assert.Contains(t, out, "first_install: true")
	assert.Contains(t, out, "kind: copy-tree")
	assert.False(t, strings.Contains(out, "plugins:"), "a first install routes nothing")
}
