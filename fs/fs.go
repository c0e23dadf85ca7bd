// Package appfs embeds the templates and migrations shipped with the binaries.
package appfs

import "embed"

//go:embed all:templates migrations
var FS embed.FS
