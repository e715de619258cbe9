// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package project parses Scratch 3 project documents (bare project.json or
// .sb3 archives) into immutable snapshots of sprites, assets and block graphs.
package project
