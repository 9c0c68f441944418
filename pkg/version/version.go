package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags "-X github.com/milan604/apinet/pkg/version.Version=v0.1.0".
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
	Go      = runtime.Version()
)

// Info returns build metadata as logger key/value pairs.
func Info() []any {
	return []any{
		"version", Version,
		"commit", Commit,
		"date", Date,
		"go", Go,
	}
}

// String renders the build for banners and --version, e.g. "dev (go1.24.0)".
func String() string {
	if Commit == "" {
		return fmt.Sprintf("%s (%s)", Version, Go)
	}
	return fmt.Sprintf("%s-%s (%s)", Version, Commit, Go)
}
