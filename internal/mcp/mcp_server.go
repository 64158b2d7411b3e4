// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gitwrapped MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Git Wrapped Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: scan_repositories ---
	s.AddTool(mcp.NewTool("scan_repositories",
		mcp.WithDescription("Scan git repositories under one or more directories and cache the result for the other tools."),
		mcp.WithString("paths", mcp.Description("Comma separated directories to scan (defaults to the configured targets).")),
		mcp.WithString("year", mcp.Description("Calendar year to extract, or 'all' for the full history.")),
		mcp.WithBoolean("refresh", mcp.Description("Ignore a cached scan and extract again.")),
	), h.handleScanRepositories)

	// --- 2. Tool: get_developer_stats ---
	s.AddTool(mcp.NewTool("get_developer_stats",
		mcp.WithDescription("Get the year in review for one developer from the last scan."),
		mcp.WithString("email", mcp.Description("Email of the developer. Mapped aliases are merged."), mcp.Required()),
		mcp.WithString("input", mcp.Description("Path to an export file to use instead of the last scan.")),
	), h.handleGetDeveloperStats)

	// --- 3. Tool: get_team_stats ---
	s.AddTool(mcp.NewTool("get_team_stats",
		mcp.WithDescription("Get the team dashboard (leaderboard, repositories, languages, collaborations) from the last scan."),
		mcp.WithString("input", mcp.Description("Path to an export file to use instead of the last scan.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of leaderboard entries returned.")),
	), h.handleGetTeamStats)

	// --- 4. Tool: list_authors ---
	s.AddTool(mcp.NewTool("list_authors",
		mcp.WithDescription("List the authors of the last scan with their mapped display name and color."),
		mcp.WithString("input", mcp.Description("Path to an export file to use instead of the last scan.")),
	), h.handleListAuthors)

	// --- 5. Tool: list_repositories ---
	s.AddTool(mcp.NewTool("list_repositories",
		mcp.WithDescription("List the repositories of the last scan, or one repository when a name is given."),
		mcp.WithString("name", mcp.Description("Repository name to show in detail.")),
		mcp.WithString("input", mcp.Description("Path to an export file to use instead of the last scan.")),
	), h.handleListRepositories)

	return s
}

// StartMCPServer starts the gitwrapped MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
