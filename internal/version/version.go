package version

// version is set at build time via -ldflags.
var version = "dev"

// String returns the build version.
func String() string {
	return version
}
