package version

import (
	"crypto/sha256"
	"fmt"
	"runtime/debug"
	"sync"
)

const (
	// Name is the MCP implementation name announced to clients
	Name = "local-project-sync"

	// Version is the current semantic version
	Version = "3.0.0"

	// BuildDate is set during build time (use -ldflags)
	BuildDate = "development"

	// GitCommit is set during build time (use -ldflags)
	GitCommit = "unknown"
)

// FullInfo returns detailed version information
func FullInfo() string {
	return Name + " " + Version + " (commit: " + GitCommit + ", built: " + BuildDate + ", build: " + BuildID() + ")"
}

var (
	buildID     string
	buildIDOnce sync.Once
)

// BuildID returns a short fingerprint of the running binary, derived from the
// Go version, main module and VCS settings.
func BuildID() string {
	buildIDOnce.Do(func() {
		buildID = computeBuildID()
	})
	return buildID
}

func computeBuildID() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version + "-" + GitCommit
	}

	h := sha256.New()
	h.Write([]byte(info.GoVersion))
	h.Write([]byte(info.Main.Path))
	h.Write([]byte(info.Main.Version))

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision", "vcs.modified", "vcs.time":
			h.Write([]byte(s.Key))
			h.Write([]byte(s.Value))
		}
	}

	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}
