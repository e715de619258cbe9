// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"":      log.ErrorLevel,
		"trace": log.DebugLevel,
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"fatal": log.FatalLevel,
		"bogus": log.ErrorLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	log.SetHandler(&CustomHandler{Writer: &buf})
	log.SetLevel(log.DebugLevel)
	t.Cleanup(func() { log.SetLevel(log.ErrorLevel) })

	traceEnabled = true
	t.Cleanup(func() { traceEnabled = false })

	Debugf("sprites=%d", 2)
	Tracef("walk %s", "a")
	WithError(errors.New("boom")).Warn("cache")

	out := buf.String()
	assert.Contains(t, out, " D sprites=2\n")
	assert.Contains(t, out, " T walk a\n")
	assert.Contains(t, out, " W cache error=boom\n")
}
