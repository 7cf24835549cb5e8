package types

type PolicyEntry struct {
	Subpath string
	Mode    MergeMode
}

// Operation is a single planned filesystem step. Source and Dest are
// absolute paths; Subpath labels which policy entry produced the step.
type Operation struct {
	Kind      OperationKind `yaml:"kind"`
	Subpath   string        `yaml:"subpath,omitempty"`
	Source    string        `yaml:"source,omitempty"`
	Dest      string        `yaml:"dest"`
	Overwrite bool          `yaml:"overwrite,omitempty"`
}

type InstallPlan struct {
	FirstInstall   bool        `yaml:"first_install"`
	PluginsSkipped bool        `yaml:"plugins_skipped,omitempty"`
	Operations     []Operation `yaml:"operations"`
}

// PluginRoute records where one incoming plugin file lands. Dest is the
// destination directory, not the final file path.
type PluginRoute struct {
	Name    string        `yaml:"name"`
	Source  string        `yaml:"source"`
	Dest    string        `yaml:"dest"`
	Outcome PluginOutcome `yaml:"outcome"`
}

type InstallReport struct {
	FirstInstall      bool
	PluginsSkipped    bool
	OperationsApplied int
	Plugins           []PluginRoute
}

// SourceRequest names where the package comes from. ArchivePath wins
// over URL, which wins over the version/platform pair; Branch resolves
// the version when neither ArchivePath nor URL is set.
type SourceRequest struct {
	ArchivePath string
	URL         string
	Version     string
	Platform    string
	Branch      string
}
