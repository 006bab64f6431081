package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// updateRepo is the GitHub repository releases are published to.
const updateRepo = "solrkit/solrkit"

var (
	appVersion   = "dev"
	appBuildTime = "unknown"
)

// SetVersion records build information injected at link time.
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("solrkit %s (built %s)\n", appVersion, appBuildTime)
	},
}

// upgradeCmd represents the upgrade command
var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade solrkit to the latest release",
	RunE:  runUpgrade,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(upgradeCmd)

	// Neither command needs config or a Solr connection.
	versionCmd.PersistentPreRunE = noopPreRun
	upgradeCmd.PersistentPreRunE = noopPreRun
}

func noopPreRun(cmd *cobra.Command, args []string) error {
	return nil
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(appVersion)
	if err != nil {
		return fmt.Errorf("cannot upgrade a development build (version %q)", appVersion)
	}

	ctx := context.Background()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepo))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found || latest.LessOrEqual(current.String()) {
		fmt.Printf("solrkit %s is the latest version\n", appVersion)
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	fmt.Printf("Upgrading solrkit %s -> %s...\n", appVersion, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("upgrade failed: %w", err)
	}

	fmt.Printf("Successfully upgraded to %s\n", latest.Version())
	return nil
}
