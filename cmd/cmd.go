// Package cmd defines the command-line interface for gitwrapped.
package cmd

import (
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(wrappedCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(authorsCmd)
	rootCmd.AddCommand(reposCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mappingCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the mapping subcommands to the parent mapping command
	mappingCmd.AddCommand(mappingShowCmd)
	mappingCmd.AddCommand(mappingSetCmd)
	mappingCmd.AddCommand(mappingAddCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("year", "y", "", "Calendar year to review, or 'all' for the full history")
	rootCmd.PersistentFlags().String("start", "", "Start date (YYYY-MM-DD), ignored when --year is set")
	rootCmd.PersistentFlags().String("end", "", "End date (YYYY-MM-DD), ignored when --year is set")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of rows to display in tables")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of repositories extracted concurrently")
	rootCmd.PersistentFlags().Int("depth", contract.DefaultMaxDepth, "How many directory levels to search for repositories")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("input", "", "Read scan data from an export file instead of the last scan")
	rootCmd.PersistentFlags().String("mapping-file", "", "Author mapping file (default ~/.gitwrapped/authors.json)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log errors and hide progress bars")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname?parseTime=true)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Scan history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for scan history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scanCmd to Viper
	scanCmd.Flags().Bool("refresh", false, "Ignore a cached scan and extract again")
	if err := viper.BindPFlags(scanCmd.Flags()); err != nil {
		contract.LogFatal("Error binding scan flags", err)
	}

	// Flags of mappingAddCmd are read directly, not through Viper
	mappingAddCmd.Flags().StringSlice("email", nil, "Email address to map (repeatable)")
	mappingAddCmd.Flags().String("color", "", "Hex color such as #3b82f6 (default: next palette color)")
	_ = mappingAddCmd.MarkFlagRequired("email")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
