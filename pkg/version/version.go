// Package version exposes build metadata injected at link time.
package version

// Values overridden with -ldflags "-X .../pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Set by the linker.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Name is the binary name used in help output and log fields.
const Name = "aurora"

// GetVersion returns the semantic version of the build, or "dev".
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return date
}
