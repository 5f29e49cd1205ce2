package app

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/vsort"
)

// Build metadata, set with -ldflags "-X github.com/agbru/vsort/internal/app.Commit=...".
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// PrintVersion writes the library version and build metadata.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "vsort %s\n", vsort.Version())
	fmt.Fprintf(out, "  commit: %s, built: %s\n", Commit, BuildDate)
	fmt.Fprintf(out, "  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
