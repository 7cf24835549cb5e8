package types

type MergeMode string

const (
	MergeModeReplace     MergeMode = "replace"
	MergeModeMerge       MergeMode = "merge"
	MergeModePluginRoute MergeMode = "plugin-route"
)

type OperationKind string

const (
	OperationDeleteTree   OperationKind = "delete-tree"
	OperationCopyTree     OperationKind = "copy-tree"
	OperationRoutePlugins OperationKind = "route-plugins"
)

type PluginOutcome string

const (
	PluginOutcomeUpdated     PluginOutcome = "updated"
	PluginOutcomeNewDisabled PluginOutcome = "new-disabled"
)

type Consent string

const (
	ConsentGranted       Consent = "granted"
	ConsentDeclined      Consent = "declined"
	ConsentIndeterminate Consent = "indeterminate"
)
