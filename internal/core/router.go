package core

import (
	"path"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"sourcemod-installer/internal/policies"
	"sourcemod-installer/internal/ports"
	"sourcemod-installer/internal/types"
)

// PluginIndex maps a plugin filename to the directory it currently
// occupies in the installed plugins tree.
type PluginIndex map[string]string

// Router decides where incoming plugin files land. Known filenames go
// back to the directory that already holds them, so plugins the
// operator moved under disabled stay disabled. Unknown filenames go to
// the disabled directory and never activate on their own.
type Router struct {
	FS ports.TreeFSPort
}

func NewRouter(fs ports.TreeFSPort) Router {
	return Router{FS: fs}
}

// BuildIndex captures every installed plugin location. It must run
// before any incoming plugin is copied, so copies made during the run
// cannot influence routing. Duplicate filenames are settled by
// policies.PluginLocationWins.
func (r Router) BuildIndex(pluginsRoot string) (PluginIndex, error) {
	rels, err := r.FS.ScanFiles(pluginsRoot, policies.PluginExtension)
	if err != nil {
		return nil, err
	}
	locations := map[string]string{}
	for _, rel := range rels {
		name := path.Base(rel)
		if incumbent, ok := locations[name]; ok && !policies.PluginLocationWins(incumbent, rel) {
			continue
		}
		locations[name] = rel
	}
	index := PluginIndex{}
	for name, rel := range locations {
		index[name] = filepath.Join(pluginsRoot, filepath.FromSlash(path.Dir(rel)))
	}
	log.Debug().Int("plugins", len(index)).Str("root", pluginsRoot).Msg("installed plugin index built")
	return index, nil
}

// Route maps every plugin in the package tree to a destination
// directory, in sorted relative-path order. Routing the same package
// twice yields the same destinations because updated plugins land
// where the index already had them.
func (r Router) Route(index PluginIndex, packagePluginsRoot string, targetPluginsRoot string) ([]types.PluginRoute, error) {
	rels, err := r.FS.ScanFiles(packagePluginsRoot, policies.PluginExtension)
	if err != nil {
		return nil, err
	}
	routes := make([]types.PluginRoute, 0, len(rels))
	for _, rel := range rels {
		name := path.Base(rel)
		route := types.PluginRoute{
			Name:    name,
			Source:  filepath.Join(packagePluginsRoot, filepath.FromSlash(rel)),
			Outcome: types.PluginOutcomeUpdated,
		}
		if dest, known := index[name]; known {
			route.Dest = dest
		} else {
			route.Dest = filepath.Join(targetPluginsRoot, policies.DisabledDirName)
			route.Outcome = types.PluginOutcomeNewDisabled
		}
		routes = append(routes, route)
	}
	return routes, nil
}
