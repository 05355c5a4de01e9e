// Package version holds the build version.
package version

// Version is the current ckc version. Overridden at build time via
// -ldflags "-X .../internal/version.Version=...".
var Version = "0.4.0"
