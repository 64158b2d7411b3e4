package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/internal/iocache"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize caching with the loaded config (no history tracking for cache commands)
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by scan commands. This avoids resolving scan
// targets and complex config processing for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the scan cache",
	Long: `Manage the cache holding scan results.

Every scan is cached under a key built from its targets, date range and the
HEAD of each repository, and the latest one is kept as the "last scan" that
the stats commands read.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and the last scan
  clear  - Remove all cached data

Examples:
  # Check cache status
  gitwrapped cache status

  # Clear cache after rewriting history
  gitwrapped cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached scans",
	Long: `Delete all cached scans from the configured backend, including the last scan.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  gitwrapped cache clear

  # Clear MySQL cache (set connection string via env variable)
  GITWRAPPED_CACHE_BACKEND=mysql GITWRAPPED_CACHE_DB_CONNECT="..." gitwrapped cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the handle opened by setup before removing the file
		iocache.CloseStores()
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and the last scan",
	Long: `Show detailed information about the scan cache.

Displays:
- Backend type and connection status
- Total number of cached scans
- Last and oldest cache entry timestamps
- Cache database size
- When the last scan ran, its targets and its totals

Examples:
  # Check cache status
  gitwrapped cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCacheStatus(os.Stdout, cacheManager); err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
	},
}
