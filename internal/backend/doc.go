// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backend loads project snapshots from git history, from files in a
// directory, or from versioned S3 objects, and exposes each source's
// revisions.
package backend
