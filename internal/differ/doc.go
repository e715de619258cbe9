// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares two project snapshots. It classifies asset changes
// (added, removed, modified in place), counts per-sprite script changes over
// canonical text and groups both into commit-style lines.
package differ
