// File: roots/wp-config/errors.go
package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConstantAlreadyDefined is matched by every redefinition conflict, whether detected by Set or Apply.
	ErrConstantAlreadyDefined = errors.New("constant already defined")
	// ErrUndefinedConfigKey is matched when Get finds no staged value.
	ErrUndefinedConfigKey = errors.New("config key not defined")
	// ErrUndefinedConstant is returned by ValueOf for keys that were never committed.
	ErrUndefinedConstant = errors.New("constant not defined")
	// ErrInvalidKey rejects empty keys before they reach the staging map.
	ErrInvalidKey = errors.New("invalid config key")

	// ErrEnvironmentLoad is matched by every environment file failure.
	ErrEnvironmentLoad = errors.New("environment load failed")
	// ErrEnvFileNotFound marks a required environment file that does not exist.
	ErrEnvFileNotFound = errors.New("environment file not found")

	// ErrFileNotFound is returned by SetFile when the definition file is missing.
	ErrFileNotFound = errors.New("definition file not found")
	// ErrInvalidDefinitionFile is matched when a definition file cannot be read as a key table.
	ErrInvalidDefinitionFile = errors.New("invalid definition file")
)

// ConstantAlreadyDefinedError reports an attempt to redefine a committed constant.
// Committed and Staged are only populated by Apply's validation phase.
type ConstantAlreadyDefinedError struct {
	Key       string
	Committed any
	Staged    any
	conflict  bool
}

func (e *ConstantAlreadyDefinedError) Error() string {
	if e.conflict {
		return fmt.Sprintf("cannot redefine constant '%s' with different value (committed %v, staged %v)",
			e.Key, e.Committed, e.Staged)
	}
	return fmt.Sprintf("aborted trying to redefine constant '%s': `define('%s', ...)` has already occurred elsewhere",
		e.Key, e.Key)
}

// Unwrap allows errors.Is(err, ErrConstantAlreadyDefined).
func (e *ConstantAlreadyDefinedError) Unwrap() error {
	return ErrConstantAlreadyDefined
}

// UndefinedConfigKeyError reports a lookup of a key that was never staged.
type UndefinedConfigKeyError struct {
	Key string
}

func (e *UndefinedConfigKeyError) Error() string {
	return fmt.Sprintf("'%s' has not been defined, use `Set(%q, ...)` first", e.Key, e.Key)
}

// Unwrap allows errors.Is(err, ErrUndefinedConfigKey).
func (e *UndefinedConfigKeyError) Unwrap() error {
	return ErrUndefinedConfigKey
}

// EnvironmentLoadError wraps a failure to read or parse an environment file.
type EnvironmentLoadError struct {
	Path string
	Err  error
}

func (e *EnvironmentLoadError) Error() string {
	return fmt.Sprintf("failed to load environment file '%s': %v", e.Path, e.Err)
}

// Unwrap exposes both the underlying cause and ErrEnvironmentLoad.
func (e *EnvironmentLoadError) Unwrap() []error {
	return []error{ErrEnvironmentLoad, e.Err}
}

func redefinitionError(key string) error {
	return &ConstantAlreadyDefinedError{Key: key}
}

func conflictError(key string, committed, staged any) error {
	return &ConstantAlreadyDefinedError{
		Key:       key,
		Committed: committed,
		Staged:    staged,
		conflict:  true,
	}
}
