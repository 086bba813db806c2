package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/internal/appcontext"
)

func TestVersion(t *testing.T) {
	app := &appcontext.Mock{
		OutputFormatFunc: func() string { return "json" },
		VersionFunc:      func() string { return "v1.2.3" },
		CommitFunc:       func() string { return "abc123" },
	}

	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var info Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, Info{Version: "v1.2.3", Commit: "abc123", Date: "unknown", BuiltBy: "test"}, info)
}

func TestVersion_Table(t *testing.T) {
	app := &appcontext.Mock{VersionFunc: func() string { return "v1.2.3" }}

	var out bytes.Buffer
	cmd := NewCommand(app)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "v1.2.3")
	assert.Contains(t, out.String(), "Built By")
}
