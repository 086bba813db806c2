// Package constants provides shared constants used throughout the toolmap codebase.
// This includes timeouts, intervals, file permissions, and file names that
// should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// LoadTimeout bounds a single refresh (all three loads together)
	LoadTimeout = 30 * time.Second

	// ConnectTimeout bounds establishing one MCP session
	ConnectTimeout = 20 * time.Second

	// ShutdownTimeout is how long the CLI waits for cleanup after an error
	ShutdownTimeout = 5 * time.Second

	// DefaultAutoUpdateInterval is the default interval between automatic refreshes
	DefaultAutoUpdateInterval = 1 * time.Minute

	// MinAutoUpdateInterval is the smallest interval the CLI accepts
	MinAutoUpdateInterval = 1 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// File name constants
const (
	// ConfigFileName is the CLI config file name searched in $HOME and the working directory
	ConfigFileName = ".toolmap"

	// ConfigDirName holds user data such as the overrides file
	ConfigDirName = ".toolmap"

	// OverridesFileName is the default user overrides file inside ConfigDirName
	OverridesFileName = "servers.yaml"

	// CatalogFileName is the builtin catalog file name
	CatalogFileName = "servers.yaml"
)

// Client identity advertised to MCP servers
const (
	// ClientName is sent in the MCP initialize handshake
	ClientName = "toolmap"

	// ClientVersion is sent in the MCP initialize handshake
	ClientVersion = "v0.1.0"
)
