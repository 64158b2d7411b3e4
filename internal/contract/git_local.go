package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/huangsam/gitwrapped/schema"
)

// commitLogFormat is the header emitted for every commit, followed by its numstat lines.
var commitLogFormat = "--format=" + LogRecordStart + strings.Join([]string{"%H", "%h", "%an", "%ae", "%aI", "%s"}, LogFieldSep)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// IsRepository implements the GitClient interface.
func (c *LocalGitClient) IsRepository(ctx context.Context, repoPath string) bool {
	_, err := c.Run(ctx, repoPath, "rev-parse", "--git-dir")
	return err == nil
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetDefaultBranch implements the GitClient interface.
func (c *LocalGitClient) GetDefaultBranch(ctx context.Context, repoPath string) (string, error) {
	for _, candidate := range []string{"main", "master"} {
		if _, err := c.Run(ctx, repoPath, "rev-parse", "--verify", "--quiet", "refs/heads/"+candidate); err == nil {
			return candidate, nil
		}
	}
	out, err := c.Run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetCommitLog implements the GitClient interface.
func (c *LocalGitClient) GetCommitLog(ctx context.Context, repoPath string, dateRange schema.DateRange) ([]byte, error) {
	args := []string{
		"log",
		commitLogFormat,
		"--numstat",
		"--all",
	}
	if !dateRange.AllTime {
		if dateRange.Start != "" {
			args = append(args, "--since="+dateRange.Start+" 00:00:00")
		}
		if dateRange.End != "" {
			// Inclusive of the whole end day.
			args = append(args, "--until="+dateRange.End+" 23:59:59")
		}
	}
	return c.Run(ctx, repoPath, args...)
}
