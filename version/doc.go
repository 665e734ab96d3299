// Package version reports the build of the tatva client.
//
// The release version is set at link time:
//
//	go build -ldflags "-X github.com/Pranshu115/tatva/version.Version=1.2.0" ./cmd/tatva
//
// The commit and dirty flag come from the VCS stamp the Go toolchain
// embeds in the binary.
package version
