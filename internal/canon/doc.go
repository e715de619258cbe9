// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package canon renders a sprite's block graph into deterministic, id-free,
// tab-indented text suitable for line-based diffing. One block renders per
// line; SUBSTACK and SUBSTACK2 branches nest one tab deeper and independent
// scripts are sorted so their order in the document does not matter.
package canon
