package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/huangsam/gitwrapped/internal/contract"
	"github.com/huangsam/gitwrapped/schema"
)

// currentCacheVersion defines the version of the cached scan layout
const currentCacheVersion = 1

// lastScanKey holds the most recent scan so later commands can reuse it
const lastScanKey = "lastScan"

// checkCacheHit attempts to retrieve and validate a cached scan
func checkCacheHit(store contract.CacheStore, key string) *schema.ScanData {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion {
		return nil
	}
	if time.Since(time.Unix(ts, 0)) > contract.CacheMaxAge {
		return nil
	}
	var scan schema.ScanData
	if err := json.Unmarshal(data, &scan); err != nil {
		contract.Logger().WithError(err).WithField("key", key).Debug("Ignoring unreadable cache entry")
		return nil
	}
	return &scan
}

// storeScan writes scan under every key. Failures only cost a rescan later.
func storeScan(store contract.CacheStore, scan *schema.ScanData, keys ...string) {
	data, err := json.Marshal(scan)
	if err != nil {
		contract.LogWarn("Failed to encode scan for caching", err)
		return
	}
	now := time.Now().Unix()
	for _, key := range keys {
		if err := store.Set(key, data, currentCacheVersion, now); err != nil {
			contract.LogWarn("Failed to cache scan", err)
		}
	}
}

// generateCacheKey creates a unique key from the scan targets, the date range
// and the HEAD of every repository, so new commits invalidate the entry.
func generateCacheKey(targets []string, dateRange schema.DateRange, repos []schema.DiscoveredRepo) string {
	var b strings.Builder
	b.WriteString(strings.Join(targets, ","))
	b.WriteString("|")
	b.WriteString(dateRange.String())
	for _, r := range repos {
		b.WriteString("|")
		b.WriteString(r.Path)
		b.WriteString("@")
		b.WriteString(r.HeadHash)
	}
	return fmt.Sprintf("scan:%016x", xxhash.Sum64String(b.String()))
}
