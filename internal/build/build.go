// Package build holds build-time information.
package build

// Version is the pict release version. It defaults to "dev" and is set
// via linker flags on release builds.
var Version = "dev"
