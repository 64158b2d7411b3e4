package core

import "context"

// Context keys for scan options
type contextKey string

const (
	suppressProgressKey contextKey = "suppressProgress"
	refreshKey          contextKey = "refresh"
)

// WithSuppressProgress hides progress output, for callers that own stdio such as the MCP server
func WithSuppressProgress(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressProgressKey, true)
}

// shouldSuppressProgress returns whether progress output should be hidden
func shouldSuppressProgress(ctx context.Context) bool {
	val := ctx.Value(suppressProgressKey)
	if val == nil {
		return false // default: show progress
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithRefresh makes a scan ignore cached results for its key
func WithRefresh(ctx context.Context, refresh bool) context.Context {
	return context.WithValue(ctx, refreshKey, refresh)
}

// shouldRefresh returns whether cached scans should be bypassed
func shouldRefresh(ctx context.Context) bool {
	val := ctx.Value(refreshKey)
	if val == nil {
		return false // default: reuse fresh cache entries
	}
	refresh, ok := val.(bool)
	return ok && refresh
}
