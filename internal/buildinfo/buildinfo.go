// Package buildinfo carries the version data injected at link time.
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = "N/A" // set by ldflags
	Date    = "N/A" // set by ldflags
	Commit  = "N/A" // set by ldflags
)

// PrintBuildData writes the build banner to w.
func PrintBuildData(w io.Writer) {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`
	fmt.Fprintf(w, tmpl, Version, Date, Commit)
}
