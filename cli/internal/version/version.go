// Package version provides version information for the hatch CLI.
//
// Overview:
//   - Responsibility: CLI version metadata (version, commit, build time)
//   - Key Types: Version variables and formatting functions
//   - Concurrency Model: Immutable after link time, safe for concurrent use
//   - Error Semantics: No errors
//   - Performance Notes: Zero-cost variables
//
// Usage:
//
//	fmt.Println(version.GetVersionString())
package version

import (
	"fmt"
	"runtime"
)

// Version is the CLI version. Release builds set it with -ldflags "-X".
var Version = "v0.1.0-dev"

// Commit is the git commit hash.
var Commit = "unknown"

// BuildTime is the build timestamp in RFC3339 format.
var BuildTime = "unknown"

// ConfigVersion is the newest hatch.yaml config_version this build reads.
const ConfigVersion = "1"

// GetVersionString returns the version line, for example:
// hatch version v0.1.0 (commit 4a9b2c1, built 2026-01-10T12:10:00Z)
func GetVersionString() string {
	return fmt.Sprintf("hatch version %s (commit %s, built %s)", Version, Commit, BuildTime)
}

// GetFullVersionInfo returns the version line plus config schema and Go runtime details.
func GetFullVersionInfo() string {
	return fmt.Sprintf(`hatch version %s (commit %s, built %s)
hatch.yaml config_version %s
go version %s (%s/%s)`,
		Version, Commit, BuildTime,
		ConfigVersion,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
