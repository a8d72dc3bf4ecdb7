// FILE: roots/wp-config/discovery.go
package config

import (
	"os"
	"path/filepath"
)

// RootDiscoveryOptions configures automatic project root discovery
type RootDiscoveryOptions struct {
	// Files whose presence marks a project root (checked in order)
	Markers []string

	// Custom search paths, checked before walking up from the current directory
	Paths []string

	// Environment variable holding an explicit root directory
	EnvVar string

	// Whether to walk up from the current directory
	UseCurrentDir bool
}

// DefaultRootDiscoveryOptions returns sensible defaults
func DefaultRootDiscoveryOptions() RootDiscoveryOptions {
	return RootDiscoveryOptions{
		Markers:       []string{".env", "composer.json"},
		EnvVar:        "WP_ROOT_DIR",
		UseCurrentDir: true,
	}
}

// DiscoverRootDir locates the project root. The explicit environment variable
// wins, then each custom path, then the current directory and its parents.
// It returns "" and false when no root is found.
func DiscoverRootDir(opts RootDiscoveryOptions, env Environment) (string, bool) {
	if env == nil {
		env = OSEnvironment()
	}

	if opts.EnvVar != "" {
		if dir, exists := env.LookupEnv(opts.EnvVar); exists && dir != "" {
			return dir, true
		}
	}

	for _, dir := range opts.Paths {
		if hasMarker(dir, opts.Markers) {
			return dir, true
		}
	}

	if opts.UseCurrentDir {
		cwd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		for dir := cwd; ; dir = filepath.Dir(dir) {
			if hasMarker(dir, opts.Markers) {
				return dir, true
			}
			if parent := filepath.Dir(dir); parent == dir {
				break
			}
		}
	}

	return "", false
}

// WithRootDiscovery makes Build set the root directory from DiscoverRootDir,
// using the builder's final Environment. No root found is not an error; the
// root directory set with WithRootDir is kept.
func (b *Builder) WithRootDiscovery(opts RootDiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

func hasMarker(dir string, markers []string) bool {
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
