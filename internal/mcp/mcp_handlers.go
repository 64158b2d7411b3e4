package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/gitwrapped/core"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// configFor clones the base config and applies the shared input argument.
func (h *toolHandler) configFor(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if in := request.GetString("input", ""); in != "" {
		cfg.InputFile = in
	}
	if l := request.GetInt("limit", 0); l > 0 && l <= contract.MaxResultLimit {
		cfg.ResultLimit = l
	}
	return cfg
}

func (h *toolHandler) handleScanRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)
	var paths []string
	for p := range strings.SplitSeq(request.GetString("paths", ""), ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if err := contract.RevalidateScan(cfg, paths, request.GetString("year", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scan parameters: %v", err)), nil
	}

	ctx = core.WithRefresh(core.WithSuppressProgress(ctx), request.GetBool("refresh", false))
	summary, _, err := core.GetScanResults(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summary, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDeveloperStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email := strings.TrimSpace(request.GetString("email", ""))
	if email == "" {
		return mcp.NewToolResultError("email is required"), nil
	}
	cfg := h.configFor(request)

	stats, _, _, err := core.GetDeveloperStatsResults(core.WithSuppressProgress(ctx), cfg, h.mgr, email)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(stats, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTeamStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)

	team, _, err := core.GetTeamStatsResults(core.WithSuppressProgress(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("team stats failed: %v", err)), nil
	}
	if len(team.Leaderboard) > cfg.ResultLimit && cfg.ResultLimit > 0 {
		team.Leaderboard = team.Leaderboard[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(team, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListAuthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)

	listings, err := core.GetAuthorsResults(core.WithSuppressProgress(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing authors failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(listings, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListRepositories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.configFor(request)
	ctx = core.WithSuppressProgress(ctx)

	var result any
	if name := request.GetString("name", ""); name != "" {
		repo, err := core.GetRepoResult(ctx, cfg, h.mgr, name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("repository lookup failed: %v", err)), nil
		}
		result = repo
	} else {
		repos, err := core.GetReposResults(ctx, cfg, h.mgr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("listing repositories failed: %v", err)), nil
		}
		result = repos
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
