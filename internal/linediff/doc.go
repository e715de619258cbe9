// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package linediff counts added and removed lines between two texts, either
// in-process with go-difflib or by delegating to git.
package linediff
