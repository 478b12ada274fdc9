package cli

import "github.com/maloquacious/semver"

var version = semver.Version{ //nolint:gochecknoglobals // build metadata
	Major: 0,
	Minor: 1,
	Patch: 0,
	Build: semver.Commit(),
}

// Version returns the program version.
func Version() semver.Version {
	return version
}
