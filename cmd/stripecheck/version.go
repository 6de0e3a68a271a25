package main

import (
	"runtime/debug"

	"github.com/broady/stripe"
)

// Version returns the version string.
//
// When installed via `go install ...@version`, returns the module version (e.g., "v0.4.0").
// For development builds, returns "devel-0.4.0+abc1234" with VCS revision if available.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return stripe.Version
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var vcsRev string
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			vcsRev = s.Value[:7]
			break
		}
	}

	if vcsRev != "" {
		return "devel-" + stripe.Version + "+" + vcsRev
	}
	return "devel-" + stripe.Version
}
