// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller pulls values out of project documents with a dot path that
// can select array elements by index or by name.
package driller
