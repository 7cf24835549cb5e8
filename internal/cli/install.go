package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sourcemod-installer/internal/app"
	"sourcemod-installer/internal/policies"
)

const defaultVersion = "1.10"

type installOptions struct {
	Platform         string
	Version          string
	Branch           string
	URL              string
	Archive          string
	NoUpgradePlugins bool
}

func newInstallCommand() *cobra.Command {
	opts := installOptions{}
	cmd := &cobra.Command{
		Use:   "install <directory>",
		Short: "Install or upgrade SourceMod in a game server directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), cmd, opts, args[0])
		},
	}
	addSourceFlags(cmd, &opts)
	return cmd
}

func runInstall(ctx context.Context, cmd *cobra.Command, opts installOptions, directory string) error {
	service := newAppService()
	req := app.InstallRequest{
		Directory:      directory,
		Platform:       resolveString(cmd, opts.Platform, "platform", "platform"),
		Version:        resolveString(cmd, opts.Version, "version", "version"),
		Branch:         resolveString(cmd, opts.Branch, "branch", "branch"),
		URL:            resolveString(cmd, opts.URL, "url", "url"),
		ArchivePath:    resolveString(cmd, opts.Archive, "archive", "archive"),
		UpgradePlugins: !resolveBool(cmd, opts.NoUpgradePlugins, "no_upgrade_plugins", "no-upgrade-plugins"),
	}
	result, err := service.Install(ctx, req)
	if err != nil {
		return err
	}
	if result.ResolvedVersion != "" {
		fmt.Printf("Resolved branch name %s to version %s\n", req.Branch, result.ResolvedVersion)
	}
	if result.FirstInstall {
		fmt.Println("Installation complete.")
		return nil
	}
	for _, plugin := range result.Plugins {
		fmt.Printf("%s copied to %s\n", plugin.Name, displayPath(directory, plugin.Dest))
	}
	if result.PluginsSkipped {
		fmt.Println("Skipping install of plugins.")
	}
	fmt.Println("Upgrade complete.")
	return nil
}

// addSourceFlags registers the package-source flags shared by install
// and plan.
func addSourceFlags(cmd *cobra.Command, opts *installOptions) {
	cmd.Flags().StringVar(&opts.Platform, "platform", runtime.GOOS, "Target operating system for the package")
	cmd.Flags().StringVar(&opts.Version, "version", defaultVersion, "SourceMod release version")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Release branch, resolved to its current version")
	cmd.Flags().StringVar(&opts.URL, "url", "", "Package URL (overrides version, platform and branch)")
	cmd.Flags().StringVar(&opts.Archive, "archive", "", "Local package archive or directory (overrides every other source)")
	cmd.Flags().BoolVar(&opts.NoUpgradePlugins, "no-upgrade-plugins", false, "Leave installed plugins alone on upgrade")
	_ = viper.BindPFlag("platform", cmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("version", cmd.Flags().Lookup("version"))
	_ = viper.BindPFlag("branch", cmd.Flags().Lookup("branch"))
	_ = viper.BindPFlag("url", cmd.Flags().Lookup("url"))
	_ = viper.BindPFlag("archive", cmd.Flags().Lookup("archive"))
	_ = viper.BindPFlag("no_upgrade_plugins", cmd.Flags().Lookup("no-upgrade-plugins"))
}

// displayPath shortens an absolute destination to its path beneath the
// installation root when possible.
func displayPath(directory string, dest string) string {
	rel, err := filepath.Rel(policies.InstallRootPath(directory), dest)
	if err != nil || strings.HasPrefix(rel, "..") {
		return dest
	}
	return filepath.ToSlash(rel)
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
