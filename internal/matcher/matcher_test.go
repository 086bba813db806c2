package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/servers"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		wantType    PatternType
		wantErr     bool
	}{
		{name: "plain word", pattern: "git", patternType: Auto, wantType: Substring},
		{name: "auto detect glob", pattern: "git*", patternType: Auto, wantType: Glob},
		{name: "auto detect regex", pattern: "^git(hub)?$", patternType: Auto, wantType: Regex},
		{name: "explicit glob", pattern: "*.txt", patternType: Glob, wantType: Glob},
		{name: "invalid regex", pattern: "[unclosed", patternType: Regex, wantErr: true},
		{name: "invalid glob", pattern: "[", patternType: Glob, wantErr: true},
		{name: "unknown type", pattern: "x", patternType: PatternType(42), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"", "anything", true},
		{"hub", "GitHub", true},
		{"HUB", "github", true},
		{"lab", "github", false},
		{"git*", "GitHub", true},
		{"git?", "gits", true},
		{"git?", "github", false},
		{"^file", "filesystem", true},
		{"^file", "myfile", false},
		{"(time|clock)", "Time zones", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			m, err := New(Auto, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.input))
		})
	}
}

func TestFilter(t *testing.T) {
	list := []servers.Descriptor{
		{Key: "filesystem", Name: "Filesystem", Tags: []string{"files"}},
		{Key: "fetch", Description: "Fetch web pages"},
		{Key: "time", Name: "Time", Tags: []string{"clock"}},
	}

	m, err := New(Auto, "web")
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch"}, keys(m.Filter(list)))

	m, err = New(Auto, "clock")
	require.NoError(t, err)
	assert.Equal(t, []string{"time"}, keys(m.Filter(list)))

	m, err = New(Auto, "f*")
	require.NoError(t, err)
	assert.Equal(t, []string{"filesystem", "fetch"}, keys(m.Filter(list)))

	m, err = New(Auto, "nothing")
	require.NoError(t, err)
	filtered := m.Filter(list)
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestPatternTypeString(t *testing.T) {
	assert.Equal(t, "substring", Substring.String())
	assert.Equal(t, "glob", Glob.String())
	assert.Equal(t, "regex", Regex.String())
	assert.Equal(t, "auto", Auto.String())
	assert.Equal(t, "unknown(9)", PatternType(9).String())
}

func keys(list []servers.Descriptor) []string {
	out := make([]string, 0, len(list))
	for _, d := range list {
		out = append(out, d.Key)
	}
	return out
}
