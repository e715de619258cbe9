// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/blockdiff/internal/cacheutil"
	"github.com/tfctl/blockdiff/internal/command"
	"github.com/tfctl/blockdiff/internal/config"
	"github.com/tfctl/blockdiff/internal/log"
	"github.com/tfctl/blockdiff/internal/util"
	"github.com/tfctl/blockdiff/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	switch {
	case len(args) > 1 && args[1] == "completion":
		// Short-circuit completion: pass args directly.
		return args
	default:
		args = processOtherArgs(args)

		// <cmd>.defaults lands right after RootDir so anything the user typed
		// follows it and wins the dedup below.
		args = injectConfigSet(args, args[1]+".defaults", 3) //nolint:mnd
		args = processSetOnly(args)
		log.Debugf("args after set processing: args=%v", args)

		return deduplicateFlags(args)
	}
}

// processOtherArgs makes sure args[2] is the RootDir, inserting the CWD when
// the user did not name one.
func processOtherArgs(args []string) []string {
	rootDir, _ := os.Getwd()
	if len(args) > 2 {
		if _, _, err := util.ParseRootDir(args[2]); err == nil {
			rootDir = args[2]
		}
	}
	if len(args) == 2 {
		args = append(args, rootDir)
	} else if args[2] != rootDir {
		args = append(args[:2], append([]string{rootDir}, args[2:]...)...)
	}
	return args
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if _, ok, err := cacheutil.EnsureBaseDir(); err != nil && ok {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}

// processSetOnly expands an explicit @set argument in place with the entries
// of <cmd>.<set> from the config file.
func processSetOnly(args []string) []string {
	for i := 2; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "@") {
			continue
		}
		set := args[i][1:]
		args = append(args[:i:i], args[i+1:]...)
		return injectConfigSet(args, args[1]+"."+set, i)
	}
	return args
}

// injectConfigSet inserts the entries found at key in the config file at
// insertIdx. Each entry is split on whitespace so "--output json" becomes two
// args.
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil {
		return args
	}
	log.Debugf("injecting %s: %v", key, entries)
	return injectEntries(args, entries, insertIdx)
}

func injectEntries(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}
	if insertIdx > len(args) {
		insertIdx = len(args)
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps only the last occurrence of each flag after the
// command. A flag owns the following arg as its value unless that arg is
// itself a flag or the flag was written as --name=value. When the surviving
// occurrence carries no value the flag is boolean, so the arg that followed a
// dropped occurrence was a positional and is kept.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 { //nolint:mnd
		return args
	}

	type unit struct {
		name  string
		parts []string
		eq    bool
	}

	var units []unit
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" {
			units = append(units, unit{parts: []string{a}})
			continue
		}

		name := strings.TrimLeft(a, "-")
		if n, _, found := strings.Cut(name, "="); found {
			units = append(units, unit{name: n, parts: []string{a}, eq: true})
			continue
		}

		u := unit{name: name, parts: []string{a}}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			u.parts = append(u.parts, args[i])
		}
		units = append(units, u)
	}

	last := map[string]int{}
	for i, u := range units {
		if u.name != "" {
			last[u.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, u := range units {
		if u.name != "" && last[u.name] != i {
			if kept := units[last[u.name]]; !kept.eq && len(kept.parts) == 1 && len(u.parts) == 2 { //nolint:mnd
				out = append(out, u.parts[1])
			}
			continue
		}
		out = append(out, u.parts...)
	}
	return out
}
