// File: roots/wp-config/convenience.go
package config

import (
	"fmt"
	"strings"
	"sync"
)

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry bound to Constants(). It is created
// on first use and never reset.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Set stages a value on the default registry.
func Set(key string, value any) error {
	return Default().Set(key, value)
}

// Define stages a value on the default registry.
func Define(key string, value any) error {
	return Default().Define(key, value)
}

// Get returns a value staged on the default registry.
func Get(key string) (any, error) {
	return Default().Get(key)
}

// Remove drops a key from the default registry.
func Remove(key string) {
	Default().Remove(key)
}

// Apply commits the default registry.
func Apply() error {
	return Default().Apply()
}

// Bootstrap creates a registry for opts.RootDir and loads its environment files.
func Bootstrap(opts Options) (*Registry, error) {
	r := NewWithOptions(opts)
	if err := r.BootstrapEnv(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that all required keys are staged
func (r *Registry) Validate(required ...string) error {
	var missing []string
	for _, key := range required {
		if !r.Has(key) {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Debug returns a formatted string showing every staged value and whether it is committed
func (r *Registry) Debug() string {
	staged := r.Staged()
	committed := r.Committed()

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	for _, key := range r.Keys() {
		b.WriteString(fmt.Sprintf("  %s:\n", key))
		b.WriteString(fmt.Sprintf("    Staged: %v\n", staged[key]))
		if value, ok := committed[key]; ok {
			b.WriteString(fmt.Sprintf("    Committed: %v\n", value))
		}
	}

	return b.String()
}
