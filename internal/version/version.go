// Package version reports the build version of the mdrx binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is overridden at build time via -ldflags "-X ...Version=...".
var Version = "dev"

// Info returns a human-readable version string, falling back to the Go
// module's embedded build info (vcs revision) when Version was not stamped
// at build time.
func Info() string {
	if Version != "dev" {
		return fmt.Sprintf("mdrx %s", Version)
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				rev := setting.Value
				if len(rev) > 12 {
					rev = rev[:12]
				}
				return fmt.Sprintf("mdrx dev (%s)", rev)
			}
		}
	}
	return "mdrx dev"
}
