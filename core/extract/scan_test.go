package extract

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var scanNow = time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC)

func scanOptions() Options {
	return Options{Workers: 2, Now: func() time.Time { return scanNow }}
}

func TestScanRepositories(t *testing.T) {
	mockClient := &contract.MockGitClient{}
	dateRange := schema.YearRange(2024)

	apiLog := generateTestLog([]logScenario{
		{hash: "a1a1a1a1a1", author: "Alice", email: "alice@x.com", date: "2024-03-01T10:00:00Z", subject: "api",
			files: []fileChange{{"10", "1", "main.go"}}},
		{hash: "a2a2a2a2a2", author: "Bob", email: "bob@x.com", date: "2024-03-02T10:00:00Z", subject: "api 2",
			files: []fileChange{{"4", "0", "query.sql"}}},
	})
	webLog := generateTestLog([]logScenario{
		{hash: "b1b1b1b1b1", author: "Bob", email: "BOB@x.com", date: "2024-04-01T10:00:00Z", subject: "web",
			files: []fileChange{{"6", "2", "app.ts"}, {"1", "0", "util.go"}}},
		{hash: "b2b2b2b2b2", author: "Bob", email: "bob@x.com", date: "2024-04-02T10:00:00Z", subject: "web 2"},
		{hash: "b3b3b3b3b3", author: "Cara", email: "cara@x.com", date: "2024-04-03T10:00:00Z", subject: "web 3"},
	})

	mockClient.On("GetCommitLog", mock.Anything, "/src/api", dateRange).Return(apiLog, nil)
	mockClient.On("GetCommitLog", mock.Anything, "/src/empty", dateRange).Return([]byte{}, nil)
	mockClient.On("GetCommitLog", mock.Anything, "/src/broken", dateRange).Return(nil, assert.AnError)
	mockClient.On("GetCommitLog", mock.Anything, "/src/web", dateRange).Return(webLog, nil)
	mockClient.On("GetDefaultBranch", mock.Anything, "/src/web").Return("trunk", nil)

	repos := []schema.DiscoveredRepo{
		{Name: "api", Path: "/src/api", DefaultBranch: "main"},
		{Name: "empty", Path: "/src/empty", DefaultBranch: "main"},
		{Name: "broken", Path: "/src/broken", DefaultBranch: "main"},
		{Path: "/src/web"},
	}

	scan, err := ScanRepositories(context.Background(), mockClient, repos, dateRange, scanOptions())
	require.NoError(t, err)

	require.Len(t, scan.Repositories, 2, "empty and failing repositories are dropped")
	assert.Equal(t, "api", scan.Repositories[0].Name)
	assert.Equal(t, "main", scan.Repositories[0].DefaultBranch)
	assert.Equal(t, "web", scan.Repositories[1].Name, "name falls back to the directory")
	assert.Equal(t, "trunk", scan.Repositories[1].DefaultBranch)
	assert.Equal(t, 3, scan.Repositories[1].CommitCount)

	assert.Len(t, scan.Commits, 5)
	assert.Equal(t, 5, scan.TotalCommits)
	assert.Equal(t, "api", scan.Commits[0].Repository)
	assert.Equal(t, "web", scan.Commits[4].Repository)

	assert.Equal(t, []schema.Author{
		{Name: "Bob", Email: "bob@x.com", CommitCount: 3, Repositories: []string{"api", "web"}},
		{Name: "Alice", Email: "alice@x.com", CommitCount: 1, Repositories: []string{"api"}},
		{Name: "Cara", Email: "cara@x.com", CommitCount: 1, Repositories: []string{"web"}},
	}, scan.Authors)

	assert.Equal(t, schema.LanguageTallies{
		{Name: "Go", Lines: 11},
		{Name: "SQL", Lines: 4},
		{Name: "TypeScript", Lines: 6},
	}, scan.Languages)

	assert.NotEmpty(t, scan.ScanID)
	assert.Equal(t, scanNow, scan.ScannedAt)
	assert.Equal(t, dateRange, scan.DateRange)
	mockClient.AssertExpectations(t)
}

func TestScanRepositories_NoRepositories(t *testing.T) {
	scan, err := ScanRepositories(context.Background(), &contract.MockGitClient{}, nil, schema.AllTimeRange(), scanOptions())
	require.NoError(t, err)
	assert.Empty(t, scan.Commits)
	assert.NotNil(t, scan.Authors)
	assert.True(t, scan.DateRange.IsAllTime())
}

func TestScanRepositories_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repos := []schema.DiscoveredRepo{{Name: "api", Path: "/src/api", DefaultBranch: "main"}}
	scan, err := ScanRepositories(ctx, &contract.MockGitClient{}, repos, schema.AllTimeRange(), scanOptions())
	assert.Nil(t, scan)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanRepositories_ProgressOutput(t *testing.T) {
	mockClient := &contract.MockGitClient{}
	mockClient.On("GetCommitLog", mock.Anything, mock.Anything, mock.Anything).Return([]byte{}, nil)

	var buf bytes.Buffer
	opts := scanOptions()
	opts.Workers = 1
	opts.Progress = &buf
	repos := []schema.DiscoveredRepo{
		{Name: "api", Path: "/src/api", DefaultBranch: "main"},
		{Name: "web", Path: "/src/web", DefaultBranch: "main"},
	}
	_, err := ScanRepositories(context.Background(), mockClient, repos, schema.AllTimeRange(), opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Scanning repositories")
}

func TestScanRepositories_UniqueScanIDs(t *testing.T) {
	a, err := ScanRepositories(context.Background(), &contract.MockGitClient{}, nil, schema.AllTimeRange(), scanOptions())
	require.NoError(t, err)
	b, err := ScanRepositories(context.Background(), &contract.MockGitClient{}, nil, schema.AllTimeRange(), scanOptions())
	require.NoError(t, err)
	assert.NotEqual(t, a.ScanID, b.ScanID)
}

func TestScanRepositories_FixedScanID(t *testing.T) {
	opts := scanOptions()
	opts.ScanID = "run-42"
	scan, err := ScanRepositories(context.Background(), &contract.MockGitClient{}, nil, schema.AllTimeRange(), opts)
	require.NoError(t, err)
	assert.Equal(t, "run-42", scan.ScanID)
}
