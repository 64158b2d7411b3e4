package cmd

import (
	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scanCmd extracts history from every repository under the targets.
var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan git repositories and cache the result.",
	Long: `Find every git repository under the given directories (default: the
current directory) and extract its commit history for the selected date range.

The result is cached and becomes the "last scan" that wrapped, team, authors
and repos read from. A cached scan is reused while the targets, range and every
repository HEAD are unchanged, for up to seven days.

Examples:
  # Scan everything under ~/src for 2024
  gitwrapped scan ~/src --year 2024

  # Scan two directories over a custom range
  gitwrapped scan ~/work ~/oss --start 2024-06-01 --end 2024-12-31

  # Force a fresh extraction
  gitwrapped scan ~/src --refresh`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx := core.WithRefresh(rootCtx, viper.GetBool("refresh"))
		if err := core.ExecuteScan(ctx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot scan repositories", err)
		}
	},
}

// discoverCmd lists repositories without reading their history.
var discoverCmd = &cobra.Command{
	Use:   "discover [paths...]",
	Short: "List the git repositories a scan would include.",
	Long: `Walk the given directories up to --depth levels and list the git
repositories found, with their default branch and HEAD. Hidden directories and
node_modules are skipped. Nothing is cached.

Examples:
  gitwrapped discover ~/src
  gitwrapped discover ~/src --depth 5 --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDiscover(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot discover repositories", err)
		}
	},
}

// exportCmd writes a portable export file.
var exportCmd = &cobra.Command{
	Use:   "export [paths...]",
	Short: "Scan repositories and write an export file.",
	Long: `Scan the given directories and write the result as an export file.
Export files can be loaded later with --input, on this or another machine.

Examples:
  gitwrapped export ~/src --year 2024 --output-file wrapped-2024.json
  gitwrapped team --input wrapped-2024.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot export scan data", err)
		}
	},
}
