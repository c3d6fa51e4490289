// Package build holds build-time information.
package build

// These are overwritten by linker flags, e.g.
//
//	-ldflags "-X go.trai.ch/spell/internal/build.Version=v1.0.0"
var (
	// Version is the application version.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
