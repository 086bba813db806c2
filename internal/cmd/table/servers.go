// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"sort"
	"strings"

	"github.com/agentstation/toolmap/pkg/servers"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxDescription is the width descriptions are cut to in wide tables.
const maxDescription = 60

// ServersToTableData converts a reconciled server list to table format.
func ServersToTableData(list []servers.Descriptor, wide bool) Data {
	headers := []string{"Key", "Name", "Transport", "Active", "Target"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignCenter, AlignLeft}
	if wide {
		headers = append(headers, "Tags", "Description")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(list))
	for _, d := range list {
		row := []string{
			d.Key,
			d.DisplayName(),
			d.EffectiveTransport().String(),
			FormatActive(d.IsActive),
			Target(d),
		}
		if wide {
			row = append(row, orDash(strings.Join(d.Tags, ", ")), orDash(truncate(d.Description, maxDescription)))
		}
		rows = append(rows, row)
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: align,
	}
}

// ServerToTableData converts one descriptor to a property/value table.
func ServerToTableData(d servers.Descriptor) Data {
	rows := [][]string{
		{"Key", d.Key},
		{"Name", d.DisplayName()},
		{"Transport", d.EffectiveTransport().String()},
		{"Active", FormatActive(d.IsActive)},
	}
	if d.Description != "" {
		rows = append(rows, []string{"Description", d.Description})
	}
	if d.Command != "" {
		rows = append(rows, []string{"Command", d.Command})
	}
	if len(d.Args) > 0 {
		rows = append(rows, []string{"Args", strings.Join(d.Args, " ")})
	}
	for _, k := range sortedKeys(d.Env) {
		rows = append(rows, []string{"Env " + k, d.Env[k]})
	}
	if d.URL != "" {
		rows = append(rows, []string{"URL", d.URL})
	}
	for _, k := range sortedKeys(d.Headers) {
		rows = append(rows, []string{"Header " + k, servers.Mask})
	}
	if len(d.Tags) > 0 {
		rows = append(rows, []string{"Tags", strings.Join(d.Tags, ", ")})
	}
	if d.Homepage != "" {
		rows = append(rows, []string{"Homepage", d.Homepage})
	}

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// FormatActive renders the active flag.
func FormatActive(active bool) string {
	if active {
		return "yes"
	}
	return "-"
}

// Target returns the command line for stdio servers and the URL otherwise.
func Target(d servers.Descriptor) string {
	if d.EffectiveTransport() == servers.TransportStdio {
		return strings.TrimSpace(d.Command + " " + strings.Join(d.Args, " "))
	}
	return d.URL
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
