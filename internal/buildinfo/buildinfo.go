// Package buildinfo carries version metadata set at link time:
//
//	go build -ldflags "-X github.com/allenai/mathfish/internal/buildinfo.Version=v0.3.0"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("mathfish %s (commit=%s, date=%s, %s)", Version, Commit, Date, runtime.Version())
}
