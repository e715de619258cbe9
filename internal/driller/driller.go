// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRe = regexp.MustCompile(`^([a-zA-Z0-9_$-]+)(\[([^\]]*)\])?$`)

// Driller navigates JSON using a dot path. A segment may carry a selector:
//
//	targets[2]    - element by index
//	targets[Cat]  - first element whose "name" is Cat
//	targets[*]    - the whole array
//	targets       - the lone element of a one element array, else the array
func Driller(jsonData []byte, path string) gjson.Result {
	current := gjson.ParseBytes(jsonData)
	if path == "" {
		return current
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRe.FindStringSubmatch(p)
		if len(matches) == 0 {
			return gjson.Result{} // Invalid path segment
		}

		key, bracket, selector := matches[1], matches[2], matches[3]

		val := current.Get(gjson.Escape(key))
		if val.IsArray() {
			arr := val.Array()
			switch {
			case bracket == "" || selector == "":
				if len(arr) == 1 {
					val = arr[0]
				}
				// Otherwise do nothing. We'll dump the whole list.
			case selector == "*":
				// Whole list.
			default:
				val = pick(arr, selector)
			}
		} else if bracket != "" && selector != "" && selector != "*" {
			return gjson.Result{}
		}

		current = val
	}

	return current
}

// pick selects from arr by numeric index, falling back to a name match.
func pick(arr []gjson.Result, selector string) gjson.Result {
	if i, err := strconv.Atoi(selector); err == nil {
		if i >= 0 && i < len(arr) {
			return arr[i]
		}
		return gjson.Result{}
	}
	for _, e := range arr {
		if e.Get("name").String() == selector {
			return e
		}
	}
	return gjson.Result{}
}
