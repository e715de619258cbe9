// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"github.com/tfctl/blockdiff/internal/cacheutil"
	"github.com/tfctl/blockdiff/internal/config"
)

// cacheSubdirs organizes the cache by bucket and then by object key. The
// version id is hashed and used as the filename.
func cacheSubdirs(be *BackendS3) []string {
	return []string{be.Bucket, be.Key}
}

// CacheFetch returns the cached body of versionID, calling fetch on a miss.
func CacheFetch(be *BackendS3, versionID string, fetch func() ([]byte, error)) ([]byte, error) {
	return cacheutil.Fetch(cacheSubdirs(be), versionID, fetch)
}

// PurgeCache drops entries older than the cache.clean config value in hours.
func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean")
	return cacheutil.Purge(cleanHours)
}
