// Package version holds build metadata stamped in via ldflags.
package version

import "fmt"

// Build metadata. Overridden at link time:
//
//	go build -ldflags "-X snipref/internal/version.Version=1.2.0 ..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the full version line printed by the version command.
func String() string {
	return fmt.Sprintf("snipref %s (commit: %s, built: %s)", Version, Commit, Date)
}
