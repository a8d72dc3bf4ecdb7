// File: roots/wp-config/builder.go
package config

import (
	"fmt"

	"go.uber.org/zap"
)

// ValidatorFunc checks a populated Registry before it is handed back by Build.
type ValidatorFunc func(r *Registry) error

// Builder provides a fluent interface for assembling a bootstrap registry
type Builder struct {
	opts         Options
	bootstrapEnv bool
	structs      []any
	files        []string
	discovery    *RootDiscoveryOptions
	err          error
	validators   []ValidatorFunc
}

// NewBuilder creates a new registry builder
func NewBuilder() *Builder {
	return &Builder{
		opts:       Options{Env: DefaultEnvOptions("")},
		validators: make([]ValidatorFunc, 0),
	}
}

// WithRootDir sets the directory holding the environment files
func (b *Builder) WithRootDir(dir string) *Builder {
	b.opts.RootDir = dir
	b.opts.Env.Dir = dir
	return b
}

// WithLogger sets the registry logger
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.opts.Logger = logger
	return b
}

// WithNamespace sets the namespace the registry commits into
func (b *Builder) WithNamespace(ns ConstantNamespace) *Builder {
	b.opts.Namespace = ns
	return b
}

// WithEnvironment sets the environment used for env files and SetFromEnv
func (b *Builder) WithEnvironment(env Environment) *Builder {
	b.opts.Environment = env
	return b
}

// WithEnvOptions replaces the environment file options
func (b *Builder) WithEnvOptions(opts EnvOptions) *Builder {
	b.opts.Env = opts
	return b
}

// WithRequireBaseEnv makes a missing base environment file fatal
func (b *Builder) WithRequireBaseEnv(required bool) *Builder {
	b.opts.Env.RequireBase = required
	return b
}

// WithTagName sets the struct tag used by SetStruct and Scan
func (b *Builder) WithTagName(tagName string) *Builder {
	if tagName == "" {
		b.err = fmt.Errorf("tag name cannot be empty")
		return b
	}
	b.opts.TagName = tagName
	return b
}

// WithBootstrapEnv loads the environment files during Build, before any values are staged
func (b *Builder) WithBootstrapEnv() *Builder {
	b.bootstrapEnv = true
	return b
}

// WithStruct stages the fields of v during Build
func (b *Builder) WithStruct(v any) *Builder {
	if v == nil {
		b.err = fmt.Errorf("struct cannot be nil")
		return b
	}
	b.structs = append(b.structs, v)
	return b
}

// WithFile stages the keys of a definition file during Build
func (b *Builder) WithFile(path string) *Builder {
	b.files = append(b.files, path)
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Registry with all specified options. Nothing is applied.
func (b *Builder) Build() (*Registry, error) {
	if b.err != nil {
		return nil, b.err
	}

	opts := b.opts
	if b.discovery != nil {
		if dir, found := DiscoverRootDir(*b.discovery, opts.Environment); found {
			opts.RootDir = dir
			opts.Env.Dir = dir
		}
	}

	r := NewWithOptions(opts)

	if b.bootstrapEnv {
		if err := r.BootstrapEnv(); err != nil {
			return nil, err
		}
	}

	for _, v := range b.structs {
		if err := r.SetStruct(v); err != nil {
			return nil, fmt.Errorf("failed to stage struct: %w", err)
		}
	}

	for _, path := range b.files {
		if err := r.SetFile(path); err != nil {
			return nil, fmt.Errorf("failed to stage file: %w", err)
		}
	}

	for _, validator := range b.validators {
		if err := validator(r); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return r, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return r
}

// BuildAndApply builds the registry and commits it immediately
func (b *Builder) BuildAndApply() (*Registry, error) {
	r, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := r.Apply(); err != nil {
		return r, err
	}
	return r, nil
}
