package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	req := require.New(t)
	info := Get()

	req.Equal(Version, info.Version)
	req.Equal(GitCommit, info.GitCommit)
	req.Equal(BuildDate, info.BuildDate)
	req.Equal(runtime.Version(), info.GoVersion)
	req.Equal(runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	req := require.New(t)
	s := Info{
		Version:   "1.2.3",
		GitCommit: "abc123",
		BuildDate: "2026-08-28",
		GoVersion: "go1.23",
		Platform:  "linux/amd64",
	}.String()

	req.True(strings.HasPrefix(s, "seri-sei version 1.2.3"), "got %q", s)
	req.Contains(s, "abc123")
	req.Contains(s, "2026-08-28")
}
