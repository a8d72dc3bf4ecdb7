package config

import "go.uber.org/zap"

// DefaultTagName is the struct tag read by SetStruct and Scan.
const DefaultTagName = "const"

// Options configures a Registry. Nil collaborators are replaced with process-wide
// defaults by NewWithOptions.
type Options struct {
	// RootDir is the directory holding the environment files used by BootstrapEnv
	RootDir string

	// Env controls environment file resolution
	// Env.Dir falls back to RootDir when empty
	Env EnvOptions

	// TagName is the struct tag used to name keys in SetStruct and Scan
	TagName string

	// Namespace is the commit target
	// Default: the process-wide namespace returned by Constants()
	Namespace ConstantNamespace

	// Environment receives values materialized from environment files and backs SetFromEnv
	// Default: the operating system environment
	Environment Environment

	// Logger receives registry diagnostics
	// Default: a no-op logger
	Logger *zap.Logger
}

// DefaultOptions returns the standard registry options bound to the process-wide
// namespace and the OS environment.
func DefaultOptions() Options {
	return Options{
		Env:         DefaultEnvOptions(""),
		TagName:     DefaultTagName,
		Namespace:   Constants(),
		Environment: OSEnvironment(),
		Logger:      zap.NewNop(),
	}
}

// withDefaults fills every unset field from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.TagName == "" {
		o.TagName = def.TagName
	}
	if o.Namespace == nil {
		o.Namespace = def.Namespace
	}
	if o.Environment == nil {
		o.Environment = def.Environment
	}
	if o.Logger == nil {
		o.Logger = def.Logger
	}
	if o.Env.BaseFile == "" {
		o.Env.BaseFile = def.Env.BaseFile
	}
	if o.Env.LocalFile == "" {
		o.Env.LocalFile = def.Env.LocalFile
	}
	if o.Env.Dir == "" {
		o.Env.Dir = o.RootDir
	}
	return o
}
