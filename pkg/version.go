// Package whdbapp holds build metadata injected by the linker.
package whdbapp

var (
	// Version is set by build flags.
	Version = "dev"

	// Build is the build timestamp, set by build flags.
	Build = "n/a"
)
