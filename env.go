// File: roots/wp-config/env.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/joho/godotenv"
)

// EnvOptions configures how environment files are resolved.
type EnvOptions struct {
	// Dir is the directory containing the environment files
	Dir string

	// BaseFile is always read when present
	// Default: ".env"
	BaseFile string

	// LocalFile is read after BaseFile when it exists; its values win on collision
	// Default: ".env.local"
	LocalFile string

	// SkipLocal disables the local override file
	SkipLocal bool

	// RequireBase makes a missing BaseFile fatal instead of an empty contribution
	RequireBase bool

	// Overwrite lets file values replace variables already set in the environment.
	// By default existing variables are left untouched.
	Overwrite bool
}

// DefaultEnvOptions returns the standard .env / .env.local layout for dir.
func DefaultEnvOptions(dir string) EnvOptions {
	return EnvOptions{
		Dir:       dir,
		BaseFile:  ".env",
		LocalFile: ".env.local",
	}
}

// Environment is the process environment as seen by the loader.
type Environment interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

type osEnvironment struct{}

func (osEnvironment) LookupEnv(key string) (string, bool) { return os.LookupEnv(key) }
func (osEnvironment) Setenv(key, value string) error      { return os.Setenv(key, value) }

// OSEnvironment returns the Environment backed by the operating system.
func OSEnvironment() Environment {
	return osEnvironment{}
}

// MapEnvironment is an in-memory Environment.
type MapEnvironment struct {
	vars  map[string]string
	mutex sync.RWMutex
}

// NewMapEnvironment creates a MapEnvironment seeded with a copy of vars.
func NewMapEnvironment(vars map[string]string) *MapEnvironment {
	env := &MapEnvironment{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		env.vars[k] = v
	}
	return env
}

// LookupEnv implements Environment.
func (e *MapEnvironment) LookupEnv(key string) (string, bool) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	value, exists := e.vars[key]
	return value, exists
}

// Setenv implements Environment.
func (e *MapEnvironment) Setenv(key, value string) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	e.vars[key] = value
	return nil
}

// EnvLoader resolves environment files into a single mapping.
type EnvLoader struct {
	opts EnvOptions
	env  Environment
}

// NewEnvLoader creates a loader. A nil env uses the OS environment.
func NewEnvLoader(opts EnvOptions, env Environment) *EnvLoader {
	def := DefaultEnvOptions(opts.Dir)
	if opts.BaseFile == "" {
		opts.BaseFile = def.BaseFile
	}
	if opts.LocalFile == "" {
		opts.LocalFile = def.LocalFile
	}
	if env == nil {
		env = OSEnvironment()
	}
	return &EnvLoader{opts: opts, env: env}
}

// Files returns the files to read, lowest precedence first. The base file is
// always listed; the local file only when it exists.
func (l *EnvLoader) Files() []string {
	files := []string{filepath.Join(l.opts.Dir, l.opts.BaseFile)}

	if !l.opts.SkipLocal {
		local := filepath.Join(l.opts.Dir, l.opts.LocalFile)
		if stat, err := os.Stat(local); err == nil && !stat.IsDir() {
			files = append(files, local)
		}
	}

	return files
}

// Resolve reads every file from Files and merges them. Later files win.
func (l *EnvLoader) Resolve() (map[string]string, error) {
	resolved := make(map[string]string)

	for i, path := range l.Files() {
		values, err := readEnvFile(path)
		if err != nil {
			if errors.Is(err, ErrEnvFileNotFound) && i == 0 && !l.opts.RequireBase {
				continue
			}
			return nil, err
		}

		for key, value := range values {
			resolved[key] = value
		}
	}

	return resolved, nil
}

// Load resolves the environment files and writes the result into the
// environment. Variables already present are kept unless Overwrite is set.
// It returns the variables that were written.
func (l *EnvLoader) Load() (map[string]string, error) {
	resolved, err := l.Resolve()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(resolved))
	for key := range resolved {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	written := make(map[string]string, len(resolved))
	for _, key := range keys {
		if _, exists := l.env.LookupEnv(key); exists && !l.opts.Overwrite {
			continue
		}
		if err := l.env.Setenv(key, resolved[key]); err != nil {
			return written, fmt.Errorf("failed to set environment variable '%s': %w", key, err)
		}
		written[key] = resolved[key]
	}

	return written, nil
}

// readEnvFile parses a single KEY=VALUE file.
func readEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &EnvironmentLoadError{Path: path, Err: ErrEnvFileNotFound}
		}
		return nil, &EnvironmentLoadError{Path: path, Err: err}
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &EnvironmentLoadError{Path: path, Err: err}
	}
	return values, nil
}
