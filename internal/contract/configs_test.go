package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	return &ConfigRawInput{
		ScanPaths:        []string{t.TempDir()},
		Limit:            10,
		Workers:          4,
		Depth:            3,
		Output:           "text",
		CacheBackend:     "sqlite",
		CacheDBConnect:   filepath.Join(t.TempDir(), "cache.db"),
		HistoryBackend:   "none",
		HistoryDBConnect: "",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid limit (zero)", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: true},
		{name: "invalid limit (too large)", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "invalid workers (zero)", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "invalid depth (negative)", mutate: func(in *ConfigRawInput) { in.Depth = -1 }, expectError: true},
		{name: "invalid depth (too deep)", mutate: func(in *ConfigRawInput) { in.Depth = MaxDepthLimit + 1 }, expectError: true},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without output file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{
			name: "parquet with output file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "out.parquet"
			},
		},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid year", mutate: func(in *ConfigRawInput) { in.Year = "twenty" }, expectError: true},
		{name: "invalid start", mutate: func(in *ConfigRawInput) { in.Start = "01/02/2024" }, expectError: true},
		{
			name: "start after end",
			mutate: func(in *ConfigRawInput) {
				in.Start = "2024-06-01"
				in.End = "2024-01-01"
			},
			expectError: true,
		},
		{name: "missing scan path", mutate: func(in *ConfigRawInput) { in.ScanPaths = []string{"/nonexistent/gitwrapped"} }, expectError: true},
		{name: "invalid cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: true},
		{
			name: "mysql backend without connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = "mysql"
				in.CacheDBConnect = ""
			},
			expectError: true,
		},
		{
			name: "sqlite cache and history on same file",
			mutate: func(in *ConfigRawInput) {
				in.HistoryBackend = "sqlite"
				in.HistoryDBConnect = in.CacheDBConnect
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	input := validInput(t)
	input.Output = ""
	input.CacheBackend = ""
	input.HistoryBackend = ""

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, GetMappingFilePath(), cfg.MappingFile)
	assert.True(t, cfg.DateRange.IsAllTime())
}

func TestProcessDateRange(t *testing.T) {
	tests := []struct {
		name     string
		year     string
		start    string
		end      string
		expected schema.DateRange
	}{
		{name: "nothing given", expected: schema.AllTimeRange()},
		{name: "all keyword", year: "ALL", expected: schema.AllTimeRange()},
		{name: "year", year: "2024", expected: schema.DateRange{Start: "2024-01-01", End: "2024-12-31"}},
		{name: "year wins over start", year: "2023", start: "2024-03-01", expected: schema.DateRange{Start: "2023-01-01", End: "2023-12-31"}},
		{name: "start only", start: "2024-03-01", expected: schema.DateRange{Start: "2024-03-01"}},
		{name: "start and end", start: "2024-03-01", end: "2024-04-01", expected: schema.DateRange{Start: "2024-03-01", End: "2024-04-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := processDateRange(cfg, &ConfigRawInput{Year: tt.year, Start: tt.start, End: tt.end})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.DateRange)
		})
	}
}

func TestResolveScanPaths(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	t.Run("dedupes and makes absolute", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, resolveScanPaths(cfg, &ConfigRawInput{ScanPaths: []string{dir, dir + string(filepath.Separator)}}))
		assert.Equal(t, []string{dir}, cfg.ScanPaths)
	})

	t.Run("defaults to current directory", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, resolveScanPaths(cfg, &ConfigRawInput{}))
		require.Len(t, cfg.ScanPaths, 1)
		assert.True(t, filepath.IsAbs(cfg.ScanPaths[0]))
	})

	t.Run("rejects files", func(t *testing.T) {
		cfg := &Config{}
		assert.Error(t, resolveScanPaths(cfg, &ConfigRawInput{ScanPaths: []string{file}}))
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{name: "sqlite empty", backend: schema.SQLiteBackend},
		{name: "none empty", backend: schema.NoneBackend},
		{name: "mysql valid", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/gitwrapped?parseTime=true"},
		{name: "mysql missing parseTime", backend: schema.MySQLBackend, connStr: "user:pass@tcp(localhost:3306)/gitwrapped", expectError: true},
		{name: "mysql missing tcp", backend: schema.MySQLBackend, connStr: "user:pass@localhost/gitwrapped", expectError: true},
		{name: "mysql empty", backend: schema.MySQLBackend, expectError: true},
		{name: "postgres valid", backend: schema.PostgreSQLBackend, connStr: "host=localhost port=5432 user=u password=p dbname=gitwrapped"},
		{name: "postgres missing dbname", backend: schema.PostgreSQLBackend, connStr: "host=localhost", expectError: true},
		{name: "postgres missing host", backend: schema.PostgreSQLBackend, connStr: "dbname=gitwrapped", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{ScanPaths: []string{"/a"}, ResultLimit: 5}
	clone := cfg.Clone()
	clone.ScanPaths[0] = "/b"
	clone.ResultLimit = 9
	assert.Equal(t, "/a", cfg.ScanPaths[0])
	assert.Equal(t, 5, cfg.ResultLimit)
}

func TestRevalidateScan(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{ScanPaths: []string{"/original"}, DateRange: schema.AllTimeRange()}

	require.NoError(t, RevalidateScan(cfg, nil, ""))
	assert.Equal(t, []string{"/original"}, cfg.ScanPaths, "empty values keep the config")
	assert.True(t, cfg.DateRange.IsAllTime())

	require.NoError(t, RevalidateScan(cfg, []string{dir}, "2023"))
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, cfg.ScanPaths)
	assert.Equal(t, schema.YearRange(2023), cfg.DateRange)

	assert.Error(t, RevalidateScan(cfg, nil, "twenty"))
	assert.Error(t, RevalidateScan(cfg, []string{filepath.Join(dir, "missing")}, ""))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	ProcessProfilingConfig(profile, "")
	assert.False(t, profile.Enabled)

	ProcessProfilingConfig(profile, "scan")
	assert.True(t, profile.Enabled)
	assert.Equal(t, "scan", profile.Prefix)
}
