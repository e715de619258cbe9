// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package project

import (
	"errors"
	"fmt"
)

// Kind tags the failure class of an Error.
type Kind int

const (
	// KindLoad covers missing revisions and malformed project documents.
	KindLoad Kind = iota + 1
	// KindGraph covers dangling block ids, missing opcodes and malformed
	// control slots.
	KindGraph
	// KindDiff covers failures of the delegated line differ.
	KindDiff
)

func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindGraph:
		return "graph"
	case KindDiff:
		return "diff"
	default:
		return "unknown"
	}
}

// Error is the single failure value returned by loading, canonicalization and
// diffing. Callers branch on Kind rather than on the message.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error of the given kind. The format follows fmt.Errorf, so
// %w may be used to keep an underlying cause.
func Errorf(kind Kind, op string, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err, or anything it wraps, is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
