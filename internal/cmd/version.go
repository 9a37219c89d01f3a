package cmd

import (
	"fmt"
	"io"

	"imc/internal/version"
)

// writeVersion prints the version for --version.
func writeVersion(w io.Writer) {
	fmt.Fprintln(w, version.Version)
}
