package imgmeta

import "runtime"

// Version is the semantic version of the imgmeta library.
const Version = "0.1.0"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// VersionInfo contains detailed version information.
type VersionInfo struct {
	// Version is the semantic version (e.g., "0.1.0")
	Version string `json:"version" yaml:"version"`
	// GitCommit is the git commit hash (set via ldflags at build time)
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	// BuildTime is the build timestamp (set via ldflags at build time)
	BuildTime string `json:"build_time" yaml:"build_time"`
	// GoVersion is the Go version used to build
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// GetVersionInfo returns detailed version information.
//
// GitCommit and BuildTime are populated at build time via -ldflags:
//
//	go build -ldflags="-X github.com/simonhull/imgmeta.gitCommit=$(git rev-parse HEAD) \
//	  -X github.com/simonhull/imgmeta.buildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/imgsize
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: gitCommit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// Variables populated at build time via -ldflags.
var (
	gitCommit = "unknown"
	buildTime = "unknown"
)
