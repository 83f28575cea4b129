// Package version holds the advent build version.
package version

// Version is overridden at build time with -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = "dev"
