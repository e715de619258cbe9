// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator rejects a --filter spec that does not parse, before any
// snapshot is loaded.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if spec := c.String("filter"); spec != "" {
		if _, err := output.BuildFilters(spec); err != nil {
			return fmt.Errorf("invalid --filter: %w", err)
		}
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, "text", "json", "raw", "yaml")
}

func DifferValidator(value any) error {
	s, _ := value.(string)
	return oneOf(strings.ToLower(s), "difflib", "git")
}

func PositiveValidator(value any) error {
	if n, ok := value.(int); !ok || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func oneOf(value any, valid ...string) error {
	for _, v := range valid {
		if v == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", valid)
}
