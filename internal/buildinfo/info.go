// Package buildinfo exposes version metadata stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/cleared-dev/txaudit/internal/buildinfo.Version=v0.1.0"
package buildinfo

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
