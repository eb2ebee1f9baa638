package abxmeta

import "runtime/debug"

// Version is the release of the abxmeta library.
const Version = "0.1.0"

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string
	GitCommit string // "unknown" outside a VCS checkout
	BuildTime string // commit time for VCS builds
	Modified  bool   // built from a dirty tree
	GoVersion string
}

// Overridden with -ldflags "-X github.com/simonhull/abxmeta.gitCommit=...
// -X github.com/simonhull/abxmeta.buildTime=..." for builds outside git,
// such as release tarballs.
var (
	gitCommit = ""
	buildTime = ""
)

// GetVersionInfo reports the library version and whatever the toolchain
// stamped into the binary.
func GetVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GitCommit: "unknown",
		BuildTime: "unknown",
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		applyBuildSettings(&info, bi.Settings)
	}

	if gitCommit != "" {
		info.GitCommit = gitCommit
	}
	if buildTime != "" {
		info.BuildTime = buildTime
	}
	return info
}

func applyBuildSettings(info *VersionInfo, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			info.GitCommit = s.Value
		case "vcs.time":
			info.BuildTime = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}
