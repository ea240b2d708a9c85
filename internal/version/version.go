// Package version carries build metadata stamped in via -ldflags.
package version

import "fmt"

var (
	// Version is the current release version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line version description.
func String() string {
	return fmt.Sprintf("aperture %s (%s, built %s)", Version, GitSHA, BuildTime)
}
