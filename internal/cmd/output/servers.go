package output

import (
	"fmt"
	"io"

	"github.com/agentstation/toolmap/internal/cmd/table"
	"github.com/agentstation/toolmap/pkg/servers"
)

// EmptyMessage is printed in place of an empty server table.
const EmptyMessage = "No tools found"

// FormatServers writes list in the given format. An empty list renders as
// EmptyMessage in table formats and as an empty array otherwise. Header
// values are masked in every format.
func FormatServers(w io.Writer, list []servers.Descriptor, format Format) error {
	if !format.IsTable() {
		redacted := make([]servers.Descriptor, 0, len(list))
		for _, d := range list {
			redacted = append(redacted, d.Redacted())
		}
		return NewFormatter(format).Format(w, redacted)
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	return NewFormatter(format).Format(w, table.ServersToTableData(list, format == FormatWide))
}

// FormatServer writes one descriptor in the given format, header values
// masked.
func FormatServer(w io.Writer, d servers.Descriptor, format Format) error {
	if !format.IsTable() {
		return NewFormatter(format).Format(w, d.Redacted())
	}
	return NewFormatter(format).Format(w, table.ServerToTableData(d))
}

// FormatAny writes data in the given format.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}
