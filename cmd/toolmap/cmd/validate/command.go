// Package validate implements the validate command, which checks a user
// overrides file and reports every problem it finds at once.
package validate

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/internal/appcontext"
	"github.com/agentstation/toolmap/internal/cmd/emoji"
	"github.com/agentstation/toolmap/internal/cmd/output"
	"github.com/agentstation/toolmap/internal/cmd/table"
	"github.com/agentstation/toolmap/internal/overrides"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
)

// Severity levels of a Problem.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Problem is one finding about an entry of the overrides file.
type Problem struct {
	Index    int    `json:"index" yaml:"index"` // 1-based position in the file
	Key      string `json:"key" yaml:"key"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
}

// Report is the result of validating one file.
type Report struct {
	File     string    `json:"file" yaml:"file"`
	Servers  int       `json:"servers" yaml:"servers"`
	Problems []Problem `json:"problems" yaml:"problems"`
}

// Errors counts the problems with error severity.
func (r Report) Errors() int {
	n := 0
	for _, p := range r.Problems {
		if p.Severity == SeverityError {
			n++
		}
	}
	return n
}

// NewCommand creates the validate command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "validate [path]",
		GroupID: "management",
		Short:   "Validate a server overrides file",
		Long: `Validate checks every server in an overrides file (YAML, TOML or JSON)
and reports all problems at once. Without a path the configured overrides
file is checked.`,
		Example: `  toolmap validate
  toolmap validate ./servers.toml
  toolmap validate claude_desktop_config.json -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			path := app.OverridesPath()
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return &errors.ValidationError{Field: "path", Message: "no overrides file configured"}
			}

			list, err := overrides.Load(path)
			if err != nil {
				return err
			}

			report := Check(path, list)
			app.Logger().Debug().
				Str("file", path).
				Int("servers", report.Servers).
				Int("problems", len(report.Problems)).
				Msg("Validated overrides")

			if err := render(cmd, report, format); err != nil {
				return err
			}

			if n := report.Errors(); n > 0 {
				return &errors.ValidationError{
					Field:   "servers",
					Value:   path,
					Message: fmt.Sprintf("%d of %d entries are invalid", n, report.Servers),
				}
			}
			return nil
		},
	}
}

// Check validates each entry of list and flags repeated keys.
func Check(file string, list []servers.Descriptor) Report {
	report := Report{File: file, Servers: len(list), Problems: []Problem{}}

	for i, d := range list {
		if err := d.Validate(); err != nil {
			report.Problems = append(report.Problems, Problem{
				Index:    i + 1,
				Key:      d.Key,
				Severity: SeverityError,
				Message:  message(err),
			})
		}
	}

	seen := make(map[string]bool, len(list))
	for i, d := range list {
		if d.Key == "" {
			continue
		}
		if seen[d.Key] {
			report.Problems = append(report.Problems, Problem{
				Index:    i + 1,
				Key:      d.Key,
				Severity: SeverityWarning,
				Message:  "duplicate key, replaces the earlier entry",
			})
		}
		seen[d.Key] = true
	}

	return report
}

func message(err error) string {
	var ve *errors.ValidationError
	if errors.As(err, &ve) {
		return ve.Field + " " + ve.Message
	}
	return err.Error()
}

func render(cmd *cobra.Command, report Report, format output.Format) error {
	w := cmd.OutOrStdout()
	if !format.IsTable() {
		return output.FormatAny(w, report, format)
	}

	if len(report.Problems) > 0 {
		data := table.Data{
			Headers:         []string{"#", "Key", "Severity", "Problem"},
			ColumnAlignment: []table.Align{table.AlignRight, table.AlignLeft, table.AlignLeft, table.AlignLeft},
		}
		for _, p := range report.Problems {
			key := p.Key
			if key == "" {
				key = "-"
			}
			data.Rows = append(data.Rows, []string{strconv.Itoa(p.Index), key, p.Severity, p.Message})
		}
		if err := output.FormatAny(w, data, format); err != nil {
			return err
		}
	}

	errs := report.Errors()
	_, err := fmt.Fprintf(w, "%s %s: %d servers, %d errors, %d warnings\n",
		emoji.Status(errs == 0), report.File, report.Servers, errs, len(report.Problems)-errs)
	return err
}
