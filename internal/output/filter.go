// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// filterRegex splits "key<op>value". Operators are = (equal), ^ (prefix),
// ~ (case-insensitive contains) and / (regexp), optionally negated with "!".
var filterRegex = regexp.MustCompile(`^([^!=^~/]+)(!?[=^~/])(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Value   string
	re      *regexp.Regexp
}

// BuildFilters parses a comma separated filter spec. BLOCKDIFF_FILTER_DELIM
// overrides the delimiter for values that contain commas.
func BuildFilters(spec string) ([]Filter, error) {
	var filters []Filter
	if spec == "" {
		return filters, nil
	}

	delim := ","
	if d, ok := os.LookupEnv("BLOCKDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, s := range strings.Split(spec, delim) {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(s)
		if parts == nil {
			return nil, fmt.Errorf("invalid filter: %q", s)
		}

		f := Filter{
			Key:     strings.TrimSpace(parts[1]),
			Operand: strings.TrimPrefix(parts[2], "!"),
			Negate:  strings.HasPrefix(parts[2], "!"),
			Value:   parts[3],
		}
		if f.Operand == "/" {
			re, err := regexp.Compile(f.Value)
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", s, err)
			}
			f.re = re
		}
		filters = append(filters, f)
	}

	return filters, nil
}

// Match reports whether row passes f. A missing key never matches.
func (f Filter) Match(row map[string]interface{}) bool {
	v, ok := row[f.Key]
	if !ok {
		return false
	}
	s := InterfaceToString(v)

	var hit bool
	switch f.Operand {
	case "=":
		hit = s == f.Value
	case "^":
		hit = strings.HasPrefix(s, f.Value)
	case "~":
		hit = strings.Contains(strings.ToLower(s), strings.ToLower(f.Value))
	case "/":
		hit = f.re.MatchString(s)
	}
	return hit != f.Negate
}

// FilterDataset returns the rows matching every filter in spec.
func FilterDataset(rows []map[string]interface{}, spec string) ([]map[string]interface{}, error) {
	filters, err := BuildFilters(spec)
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return rows, nil
	}

	var out []map[string]interface{}
rowLoop:
	for _, row := range rows {
		for _, f := range filters {
			if !f.Match(row) {
				continue rowLoop
			}
		}
		out = append(out, row)
	}
	return out, nil
}
