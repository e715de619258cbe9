// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/blockdiff/internal/config"
)

// Options are the presentation flags shared by every command.
type Options struct {
	Format  string
	Titles  bool
	Color   bool
	Padding int
	Sort    string
	Filter  string
	Header  string
	Footer  string
}

// OptionsFrom reads the presentation flags from cmd. Without an explicit
// --color, color is on only when stdout is a terminal and NO_COLOR is unset.
func OptionsFrom(cmd *cli.Command) Options {
	o := Options{
		Format:  cmd.String("output"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
		Sort:    cmd.String("sort"),
		Filter:  cmd.String("filter"),
	}

	if cmd.IsSet("color") {
		o.Color = cmd.Bool("color")
	} else {
		_, noColor := os.LookupEnv("NO_COLOR")
		o.Color = !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	}

	if h, ok := cmd.Metadata["header"].(string); ok {
		o.Header = h
	}
	if f, ok := cmd.Metadata["footer"].(string); ok {
		o.Footer = f
	}
	return o
}

// Column is one column of a tabular result. Transform is a set of single
// letter transforms applied in text output:
//
//	T - time.Time as "3 hours ago"
//	B - byte count as "1.2 kB"
//	u - upper case
//	l - lower case
type Column struct {
	Key       string
	Title     string
	Transform string
}

func (c Column) title() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Key
}

// Dataset is a command's result. Rows feed text and raw output; Doc, when
// set, is what json and yaml serialize instead of the rows.
type Dataset struct {
	Columns []Column
	Rows    []map[string]interface{}
	Doc     interface{}
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil {
		return emptyValue[0]
	}
	if v := reflect.ValueOf(value); v.Kind() == reflect.String && v.Len() == 0 {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	case json.Number:
		return value.String()
	case time.Time:
		return value.Format(time.RFC3339)
	case fmt.Stringer:
		return value.String()
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// transform renders value for text output per c.Transform.
func (c Column) transform(value interface{}) string {
	if strings.Contains(c.Transform, "T") {
		if t, ok := value.(time.Time); ok && !t.IsZero() {
			return humanize.Time(t)
		}
	}
	if strings.Contains(c.Transform, "B") {
		switch n := value.(type) {
		case int:
			return humanize.Bytes(uint64(max(n, 0)))
		case int64:
			return humanize.Bytes(uint64(max(n, 0)))
		}
	}

	s := InterfaceToString(value, "-")
	switch {
	case strings.Contains(c.Transform, "u"):
		s = strings.ToUpper(s)
	case strings.Contains(c.Transform, "l"):
		s = strings.ToLower(s)
	}
	return s
}

// Spit filters, sorts and renders ds in the requested format.
func Spit(w io.Writer, opts Options, ds Dataset) error {
	if w == nil {
		w = os.Stdout
	}

	rows, err := FilterDataset(ds.Rows, opts.Filter)
	if err != nil {
		return err
	}
	SortDataset(rows, opts.Sort)

	doc := ds.Doc
	if doc == nil {
		doc = rows
	}

	switch opts.Format {
	case "json":
		return writeJSON(w, doc)
	case "yaml":
		return writeYAML(w, doc)
	case "raw":
		for _, row := range rows {
			cells := make([]string, 0, len(ds.Columns))
			for _, c := range ds.Columns {
				cells = append(cells, InterfaceToString(row[c.Key]))
			}
			fmt.Fprintln(w, strings.Join(cells, "\t"))
		}
		return nil
	default:
		TableWriter(w, opts, ds.Columns, rows)
		return nil
	}
}

// SpitLines renders line oriented results. Text and raw output print the
// lines; json and yaml serialize doc.
func SpitLines(w io.Writer, opts Options, lines []string, doc interface{}) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Format {
	case "json":
		return writeJSON(w, doc)
	case "yaml":
		return writeYAML(w, doc)
	}

	style := lipgloss.NewStyle()
	if opts.Color && opts.Format != "raw" {
		header, _, _ := getColors("colors")
		style = style.Foreground(header).Bold(true)
	}
	if opts.Header != "" && opts.Format != "raw" {
		fmt.Fprintln(w, style.Render(opts.Header))
	}
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}

func writeJSON(w io.Writer, doc interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, doc interface{}) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// TableWriter renders rows in tabular form honoring color, titles and padding
// options.
func TableWriter(w io.Writer, opts Options, columns []Column, rows []map[string]interface{}) {
	if w == nil {
		w = os.Stdout
	}

	if len(rows) == 0 {
		log.Debug("table: no rows")
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, c.transform(r[c.Key]))
		}
		cells = append(cells, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		headers := make([]string, 0, len(columns))
		for _, c := range columns {
			headers = append(headers, c.title())
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// Use the explicit color if found in the config and leave it up to the user
	// to choose appropriate colors for their theme.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
