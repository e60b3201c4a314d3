// Package buildinfo carries the firmware's build identity. The variables
// are stamped at link time via -ldflags; unstamped builds report "dev".
package buildinfo

// Version is the release tag.
var Version = "dev"

// Commit is the source revision.
var Commit = "unknown"

// Date is the build timestamp.
var Date = "unknown"

// Short returns a compact identifier for the version banner and boot log.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}
