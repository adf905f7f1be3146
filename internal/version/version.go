// Package version holds build metadata.
package version

// Name is the package name reported by the CLI and health endpoints.
const Name = "facets"

// Version is overridden at build time with
// -ldflags "-X facets_backend/internal/version.Version=..."
var Version = "0.1.0"

// String returns "name version".
func String() string {
	return Name + " " + Version
}
