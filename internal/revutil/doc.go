// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package revutil describes project revisions and resolves revision specs
// (~N, id prefixes, file paths) against a list of them.
package revutil
