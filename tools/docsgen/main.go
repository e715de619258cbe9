// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen writes reference pages for every blockdiff subcommand. Flags and
// usage come from the live command tree; descriptions, examples and notes
// come from templates/blockdiff.yaml.
package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/blockdiff/internal/command"
)

//go:embed templates
var templates embed.FS

type Config struct {
	Subcommands []Subcommand `yaml:"subcommands"`
}

type Subcommand struct {
	ID          string    `yaml:"id"`
	Short       string    `yaml:"short"`
	Description string    `yaml:"description"`
	Usage       string    `yaml:"usage"`
	Flags       []Flag    `yaml:"flags"`
	Examples    []Example `yaml:"examples"`
	Notes       []string  `yaml:"notes,omitempty"`
}

type Flag struct {
	ID          string `yaml:"id"`
	Syntax      string `yaml:"syntax"`
	Description string `yaml:"description"`
	Default     string `yaml:"default,omitempty"`
	More        string `yaml:"more,omitempty"`
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 { //nolint:mnd
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	if err := generate(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(docs string) error {
	data, err := templates.ReadFile("templates/blockdiff.yaml")
	if err != nil {
		return err
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse blockdiff.yaml: %w", err)
	}

	app, err := command.InitApp(context.Background(), []string{"blockdiff"})
	if err != nil {
		return err
	}

	types := []Outputs{
		{Template: "templates/blockdiff.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "templates/blockdiff.man.tmpl", Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "blockdiff-", Suffix: ".1"},
	}

	for _, sub := range config.Subcommands {
		cmd := findCommand(app, sub.ID)
		if cmd == nil {
			return fmt.Errorf("no command named %q", sub.ID)
		}
		sub = merge(sub, cmd)

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := render(t, metadata); err != nil {
				return err
			}
		}
	}
	return nil
}

func render(t Outputs, metadata TemplateData) error {
	if err := os.MkdirAll(t.Folder, 0o755); err != nil {
		return err
	}

	tmpl, err := template.ParseFS(templates, t.Template)
	if err != nil {
		return err
	}

	name := filepath.Join(t.Folder, t.Prefix+metadata.ID+t.Suffix)
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Println("Generating", name)
	return tmpl.Execute(file, metadata)
}

func findCommand(app *cli.Command, name string) *cli.Command {
	for _, c := range app.Commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// merge fills short text, usage and flags from cmd. Flags described in the
// yaml keep their prose; the rest take the flag's usage string.
func merge(sub Subcommand, cmd *cli.Command) Subcommand {
	if sub.Short == "" {
		sub.Short = cmd.Usage
	}
	if sub.Usage == "" {
		sub.Usage = cmd.UsageText
	}

	written := map[string]Flag{}
	for _, f := range sub.Flags {
		written[f.ID] = f
	}

	flags := make([]Flag, 0, len(cmd.Flags))
	for _, cf := range cmd.Flags {
		names := cf.Names()
		f, ok := written[names[0]]
		if !ok {
			f = Flag{ID: names[0]}
		}
		if f.Syntax == "" {
			f.Syntax = syntax(cf)
		}
		if doc, ok := cf.(cli.DocGenerationFlag); ok {
			if f.Description == "" {
				f.Description = doc.GetUsage()
			}
			if f.Default == "" && doc.TakesValue() && doc.IsDefaultVisible() {
				f.Default = doc.GetValue()
			}
		}
		flags = append(flags, f)
	}

	sort.Slice(flags, func(i, j int) bool {
		return flags[i].ID < flags[j].ID
	})
	sub.Flags = flags
	return sub
}

func syntax(f cli.Flag) string {
	var parts []string
	for _, n := range f.Names() {
		if len(n) == 1 {
			parts = append(parts, "-"+n)
		} else {
			parts = append(parts, "--"+n)
		}
	}
	s := strings.Join(parts, ", ")
	if doc, ok := f.(cli.DocGenerationFlag); ok && doc.TakesValue() {
		s += " " + strings.ToUpper(doc.TypeName())
	}
	return s
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
