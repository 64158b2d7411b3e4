package contract

import (
	"context"

	"github.com/huangsam/gitwrapped/schema"
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock of GitClient.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// IsRepository implements the GitClient interface.
func (m *MockGitClient) IsRepository(ctx context.Context, repoPath string) bool {
	ret := m.Called(ctx, repoPath)
	return ret.Bool(0)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// GetDefaultBranch implements the GitClient interface.
func (m *MockGitClient) GetDefaultBranch(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// GetCommitLog implements the GitClient interface.
func (m *MockGitClient) GetCommitLog(ctx context.Context, repoPath string, dateRange schema.DateRange) ([]byte, error) {
	ret := m.Called(ctx, repoPath, dateRange)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
