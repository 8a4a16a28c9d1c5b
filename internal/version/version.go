package version

// Version contains the application version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/ossgate/internal/version.Version=v1.0.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Full renders the version with any build metadata the linker stamped in,
// e.g. "v1.0.0 (commit 3f2a1bc, built 2026-08-29T10:00:00Z)".
func Full() string {
	s := Version
	switch {
	case GitCommit != "unknown" && BuildTime != "unknown":
		s += " (commit " + GitCommit + ", built " + BuildTime + ")"
	case GitCommit != "unknown":
		s += " (commit " + GitCommit + ")"
	case BuildTime != "unknown":
		s += " (built " + BuildTime + ")"
	}
	return s
}
