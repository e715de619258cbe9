// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/blockdiff/internal/linediff"
)

var (
	pickFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "pick",
		Aliases:     []string{"p"},
		Usage:       "pick the two revisions to compare interactively",
		HideDefault: true,
	}

	rawFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "raw",
		Usage:       "print a structural delta of each changed block map",
		HideDefault: true,
	}
)

// NewGlobalFlags returns the presentation flags shared by every command.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "cell padding for text tables",
			Value: 1,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewDifferFlags returns --differ and --context. Both fall back to the
// command's namespace and then the top level of the config file at path.
func NewDifferFlags(ns string, path string) []cli.Flag {
	differ := &cli.StringFlag{
		Name:    "differ",
		Aliases: []string{"d"},
		Usage:   "line differ to use (difflib or git)",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("BLOCKDIFF_DIFFER"),
		),
		Value: "difflib",
		Validator: func(value string) error {
			return FlagValidators(value, DifferValidator)
		},
	}

	context := &cli.IntFlag{
		Name:  "context",
		Usage: "context lines handed to the line differ",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("BLOCKDIFF_CONTEXT"),
		),
		Value: linediff.DefaultContext,
		Validator: func(value int) error {
			return FlagValidators(value, PositiveValidator)
		},
	}
	context.Sources.Chain = append(context.Sources.Chain, nameSpacedSources(ns, context.Name, path)...)

	return []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, path, differ),
		context,
	}
}

// NewSourceFlags returns the flags that pick and tune the snapshot source.
// The s3 flags also read the s3 section of the config file.
func NewSourceFlags(ns string, path string) []cli.Flag {
	s3Flag := func(name, usage, env string) *cli.StringFlag {
		flag := &cli.StringFlag{
			Name:    name,
			Usage:   usage,
			Sources: cli.NewValueSourceChain(),
		}
		if env != "" {
			flag.Sources.Chain = append(flag.Sources.Chain, cli.EnvVar(env))
		}
		flag.Sources.Chain = append(flag.Sources.Chain, yaml.YAML("s3."+name, altsrc.StringSourcer(path)))
		return flag
	}

	pathStyle := &cli.BoolFlag{
		Name:        "path-style",
		Usage:       "use path-style S3 addressing",
		HideDefault: true,
		Sources: cli.NewValueSourceChain(
			yaml.YAML("s3.path-style", altsrc.StringSourcer(path)),
		),
	}

	limit := &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"l"},
		Usage:   "limit revisions listed",
		Value:   0,
	}
	limit.Sources.Chain = append(limit.Sources.Chain, nameSpacedSources(ns, limit.Name, path)...)

	return []cli.Flag{
		s3Flag("bucket", "read snapshots from versions of an object in this bucket", "BLOCKDIFF_BUCKET"),
		s3Flag("key", "object key; defaults to the project file name", "BLOCKDIFF_KEY"),
		s3Flag("profile", "AWS shared config profile", "AWS_PROFILE"),
		s3Flag("region", "AWS region", "AWS_REGION"),
		s3Flag("endpoint", "S3 compatible endpoint URL", ""),
		pathStyle,
		limit,
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, nameSpacedSources(ns, flag.Name, path)...)
	return flag
}

// nameSpacedSources looks a flag up as "<ns>.<name>" and then "<name>" in the
// config file at path.
func nameSpacedSources(ns string, name string, path string) []cli.ValueSource {
	return []cli.ValueSource{
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	}
}
