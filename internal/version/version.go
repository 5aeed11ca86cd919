package version

import "runtime/debug"

// Version is set at build time via -ldflags.
var Version = "unknown"

// Installing with `go install github.com/leg100/roadmap@latest` skips
// -ldflags, but the module version is then embedded in the build info, so
// fall back to that.
func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		Version = v
	}
}
