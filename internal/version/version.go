// Package version exposes build metadata set with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/DuyBigPP/PHIMMOI-BACKEND/internal/version.Version=1.2.0"
package version

import "runtime"

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String renders a one-line banner for CLI -version flags.
func (i Info) String() string {
	return i.Version + " (" + i.GitCommit + ", built " + i.BuildTime + ", " + i.GoVersion + ")"
}
