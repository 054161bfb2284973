package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Service     string `json:"service,omitempty"`
	Environment string `json:"environment,omitempty"`
	Version     string `json:"version"`
	GoVersion   string `json:"go_version"`
	BuildTime   string `json:"build_time,omitempty"`
	GitCommit   string `json:"git_commit,omitempty"`
	Modified    bool   `json:"modified,omitempty"`
}

// Set with -ldflags "-X .../internal/handler.Version=..." at release time.
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// CurrentVersion assembles build details. Linker flags win; otherwise the
// VCS stamp the go tool embeds is used, and the version falls back to
// $VERSION.
func CurrentVersion() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}
	if info.Version == "" || info.Version == "dev" {
		if env := os.Getenv("VERSION"); env != "" {
			info.Version = env
		} else {
			info.Version = "dev"
		}
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// HandleVersion reports the build of this process.
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion(service, environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		info := CurrentVersion()
		info.Service = service
		info.Environment = environment
		respondJSON(w, http.StatusOK, info)
	}
}
