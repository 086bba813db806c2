// Package embedded carries the builtin server catalog compiled into the binary.
package embedded

import (
	"embed"
)

// FS embeds the builtin catalog yaml at build time.
//
//go:embed catalog/*
var FS embed.FS
