// Package version reports the playground build version.
package version

import "runtime/debug"

// Version can be set at build time:
// go build -ldflags "-X github.com/nsscreencast/595-audiokit-6/version.Version=$(git describe --dirty)"
var Version string

// String returns Version if it was set, otherwise the short VCS hash baked
// into the binary, with a -dirty suffix when the tree had local changes.
func String() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var hash, modified string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			hash = setting.Value
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if len(hash) > 7 {
		hash = hash[:7]
	}
	if hash != "" && modified == "true" {
		hash += "-dirty"
	}
	return hash
}
