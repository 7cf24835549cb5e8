package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"sourcemod-installer/internal/app"
	"sourcemod-installer/internal/types"
)

type planOptions struct {
	installOptions
	Format string
}

func newPlanCommand() *cobra.Command {
	opts := planOptions{}
	cmd := &cobra.Command{
		Use:   "plan <directory>",
		Short: "Preview the operations an install or upgrade would apply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.Context(), cmd, opts, args[0])
		},
	}
	addSourceFlags(cmd, &opts.installOptions)
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text or yaml")
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

// planDocument is the yaml shape of a plan preview.
type planDocument struct {
	ResolvedVersion string              `yaml:"resolved_version,omitempty"`
	Plan            types.InstallPlan   `yaml:"plan"`
	Plugins         []types.PluginRoute `yaml:"plugins,omitempty"`
}

func runPlan(ctx context.Context, cmd *cobra.Command, opts planOptions, directory string) error {
	format := resolveString(cmd, opts.Format, "format", "format")
	if format != "text" && format != "yaml" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported format %q", format))
	}

	service := newAppService()
	result, err := service.Plan(ctx, app.PlanRequest{
		Directory:      directory,
		Platform:       resolveString(cmd, opts.Platform, "platform", "platform"),
		Version:        resolveString(cmd, opts.Version, "version", "version"),
		Branch:         resolveString(cmd, opts.Branch, "branch", "branch"),
		URL:            resolveString(cmd, opts.URL, "url", "url"),
		ArchivePath:    resolveString(cmd, opts.Archive, "archive", "archive"),
		UpgradePlugins: !resolveBool(cmd, opts.NoUpgradePlugins, "no_upgrade_plugins", "no-upgrade-plugins"),
	})
	if err != nil {
		return err
	}

	if format == "yaml" {
		data, err := yaml.Marshal(planDocument{
			ResolvedVersion: result.ResolvedVersion,
			Plan:            result.Plan,
			Plugins:         result.Plugins,
		})
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to marshal plan").
				WithCause(err)
		}
		fmt.Print(string(data))
		return nil
	}

	printPlanText(directory, result)
	return nil
}

func printPlanText(directory string, result app.PlanResult) {
	if result.ResolvedVersion != "" {
		fmt.Printf("resolved version: %s\n", result.ResolvedVersion)
	}
	if result.Plan.FirstInstall {
		fmt.Println("first install: full package copy")
	}
	for _, op := range result.Plan.Operations {
		switch op.Kind {
		case types.OperationDeleteTree:
			fmt.Printf("%-13s %s\n", op.Kind, displayPath(directory, op.Dest))
		case types.OperationCopyTree:
			mode := "replace"
			if op.Overwrite {
				mode = "merge"
			}
			if result.Plan.FirstInstall {
				mode = "full copy"
			}
			fmt.Printf("%-13s %s (%s)\n", op.Kind, displayPath(directory, op.Dest), mode)
		case types.OperationRoutePlugins:
			fmt.Printf("%-13s %s\n", op.Kind, displayPath(directory, op.Dest))
		}
	}
	if result.Plan.PluginsSkipped {
		fmt.Println("plugins: skipped")
	}
	for _, plugin := range result.Plugins {
		fmt.Printf("  plugin %s -> %s (%s)\n", plugin.Name, displayPath(directory, plugin.Dest), routeSummary(plugin))
	}
}

func routeSummary(route types.PluginRoute) string {
	if route.Outcome == types.PluginOutcomeNewDisabled {
		return "new, disabled"
	}
	return "updated"
}
