package app

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sourcemod-installer/internal/types"
)

func TestPlanFirstInstall(t *testing.T) {
	pkg := packageDir(t)
	target := t.TempDir()

	service, pager, confirm := testService(types.ConsentDeclined)
	result, err := service.Plan(t.Context(), PlanRequest{
		Directory:      target,
		ArchivePath:    pkg,
		UpgradePlugins: true,
	})
	require.NoError(t, err)

	assert.True(t, result.Plan.FirstInstall)
	require.Len(t, result.Plan.Operations, 1)
	assert.Equal(t, types.OperationCopyTree, result.Plan.Operations[0].Kind)
	assert.Empty(t, result.Plugins)

	assert.Empty(t, pager.shown, "planning must not show the license")
	assert.Zero(t, confirm.asked)
	assert.Empty(t, manifest(t, target), "planning must not touch the target")
}

func TestPlanUpgradeListsProspectiveRoutes(t *testing.T) {
	pkg := packageDir(t)
	target := t.TempDir()
	writeTree(t, target, map[string]string{
		"addons/sourcemod/bin/sourcemod.so":  "core v1",
		"addons/sourcemod/plugins/admin.smx": "admin v1",
	})
	before := manifest(t, target)

	service, _, _ := testService(types.ConsentGranted)
	result, err := service.Plan(t.Context(), PlanRequest{
		Directory:      target,
		ArchivePath:    pkg,
		UpgradePlugins: true,
	})
	require.NoError(t, err)

	assert.False(t, result.Plan.FirstInstall)
	assert.False(t, result.Plan.PluginsSkipped)

	outcomes := map[string]types.PluginOutcome{}
	for _, route := range result.Plugins {
		outcomes[route.Name] = route.Outcome
	}
	expected := map[string]types.PluginOutcome{
		"admin.smx":     types.PluginOutcomeUpdated,
		"newplugin.smx": types.PluginOutcomeNewDisabled,
	}
	if diff := cmp.Diff(expected, outcomes); diff != "" {
		t.Fatalf("unexpected prospective routes (-want +got):\n%s", diff)
	}

	after := manifest(t, target)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("plan mutated the target (-want +got):\n%s", diff)
	}
}

func TestPlanCanSkipPlugins(t *testing.T) {
	pkg := packageDir(t)
	target := t.TempDir()
	writeTree(t, target, map[string]string{
		"addons/sourcemod/bin/sourcemod.so": "core v1",
	})

	service, _, _ := testService(types.ConsentGranted)
	result, err := service.Plan(t.Context(), PlanRequest{
		Directory:      target,
		ArchivePath:    pkg,
		UpgradePlugins: false,
	})
	require.NoError(t, err)

	assert.True(t, result.Plan.PluginsSkipped)
	assert.Empty(t, result.Plugins)
	for _, op := range result.Plan.Operations {
		assert.NotEqual(t, types.OperationRoutePlugins, op.Kind)
	}
}

func TestPlanRequiresDirectory(t *testing.T) {
	service, _, _ := testService(types.ConsentGranted)
	_, err := service.Plan(t.Context(), PlanRequest{Directory: ""})
	require.Error(t, err)
}

func TestPlanMissingArchive(t *testing.T) {
	service, _, _ := testService(types.ConsentGranted)
	_, err := service.Plan(t.Context(), PlanRequest{
		Directory:   t.TempDir(),
		ArchivePath: filepath.Join(t.TempDir(), "gone.tar.gz"),
	})
	require.Error(t, err)
}
