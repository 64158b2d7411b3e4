package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gitwrapped/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultMaxDepth    = 3
	MaxDepthLimit      = 10
	DateFormat         = "2006-01-02"
	AllTimeKeyword     = "all"
	minYear            = 1970
	maxYear            = 9999
)

// CacheMaxAge is how long a cached scan stays reusable.
const CacheMaxAge = 7 * 24 * time.Hour

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	ScanPaths   []string
	DateRange   schema.DateRange
	ResultLimit int
	Workers     int
	MaxDepth    int
	Output      schema.OutputMode
	OutputFile  string
	InputFile   string
	MappingFile string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	Verbose     bool
	Quiet       bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ScanPaths []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Year             string `mapstructure:"year"`
	Start            string `mapstructure:"start"`
	End              string `mapstructure:"end"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Depth            int    `mapstructure:"depth"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Input            string `mapstructure:"input"`
	MappingFile      string `mapstructure:"mapping-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	Verbose          bool   `mapstructure:"verbose"`
	Quiet            bool   `mapstructure:"quiet"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
}

// Clone returns a copy of the config that is safe to modify.
func (c *Config) Clone() *Config {
	clone := *c
	clone.ScanPaths = append([]string(nil), c.ScanPaths...)
	return &clone
}

// ProcessAndValidate validates the raw input and populates cfg.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if err := resolveScanPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString checks the shape of a backend connection string.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' with the host:port")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
		if !strings.Contains(connStr, "parseTime=true") {
			return fmt.Errorf("MySQL connection string must set parseTime=true, e.g. user:pass@tcp(host:3306)/db?parseTime=true")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the cache and history backends.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.InputFile = input.Input
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose
	cfg.Quiet = input.Quiet

	cfg.MappingFile = input.MappingFile
	if cfg.MappingFile == "" {
		cfg.MappingFile = GetMappingFilePath()
	}

	colors := true
	if input.Color != "" {
		parsed, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		colors = parsed
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Depth Validation ---
	if input.Depth < 0 || input.Depth > MaxDepthLimit {
		return fmt.Errorf("depth must be between 0 and %d (received %d)", MaxDepthLimit, input.Depth)
	}
	cfg.MaxDepth = input.Depth

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 5. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processDateRange turns year / start / end into a DateRange.
// A year wins over start and end. No input at all means the full history.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	year := strings.TrimSpace(input.Year)
	if strings.EqualFold(year, AllTimeKeyword) {
		cfg.DateRange = schema.AllTimeRange()
		return nil
	}
	if year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y < minYear || y > maxYear {
			return fmt.Errorf("invalid year %q. Expected a four digit year or %q", input.Year, AllTimeKeyword)
		}
		cfg.DateRange = schema.YearRange(y)
		return nil
	}

	if input.Start == "" && input.End == "" {
		cfg.DateRange = schema.AllTimeRange()
		return nil
	}

	var start, end time.Time
	if input.Start != "" {
		t, err := time.Parse(DateFormat, input.Start)
		if err != nil {
			return fmt.Errorf("invalid start date %q. Expected YYYY-MM-DD: %w", input.Start, err)
		}
		start = t
	}
	if input.End != "" {
		t, err := time.Parse(DateFormat, input.End)
		if err != nil {
			return fmt.Errorf("invalid end date %q. Expected YYYY-MM-DD: %w", input.End, err)
		}
		end = t
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return fmt.Errorf("start date (%s) cannot be after end date (%s)", input.Start, input.End)
	}
	cfg.DateRange = schema.DateRange{Start: input.Start, End: input.End}
	return nil
}

// resolveScanPaths makes scan targets absolute and checks they are directories.
func resolveScanPaths(cfg *Config, input *ConfigRawInput) error {
	paths := input.ScanPaths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	resolved := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve path %q: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("scan path %q is not accessible: %w", p, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("scan path %q is not a directory", p)
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		resolved = append(resolved, abs)
	}
	cfg.ScanPaths = resolved
	return nil
}

// RevalidateScan applies scan targets and a year on top of an already validated
// config. Empty values leave the config unchanged.
func RevalidateScan(cfg *Config, paths []string, year string) error {
	input := &ConfigRawInput{ScanPaths: paths, Year: year}
	if len(paths) > 0 {
		if err := resolveScanPaths(cfg, input); err != nil {
			return err
		}
	}
	if strings.TrimSpace(year) != "" {
		if err := processDateRange(cfg, input); err != nil {
			return err
		}
	}
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
}
