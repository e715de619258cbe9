// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws builds S3 clients and reads the version history of a single
// object in a versioned bucket.
package aws
