package config

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
)

// SetStruct stages every exported field of a struct (or struct pointer).
// Keys come from the registry's tag name, falling back to the field name;
// fields tagged "-" are skipped. Keys are staged in sorted order and the first
// failing Set aborts the rest.
func (r *Registry) SetStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("SetStruct requires a non-nil struct pointer or value")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("SetStruct requires a struct or struct pointer, got %T", v)
	}

	values := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &values,
		TagName: r.options.TagName,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(rv.Interface()); err != nil {
		return fmt.Errorf("failed to decode struct %T: %w", v, err)
	}

	return r.setAll(values)
}

// SetFromEnv stages the environment value of key when the variable is set.
// It reports whether a value was staged.
func (r *Registry) SetFromEnv(key string) (bool, error) {
	value, exists := r.env.LookupEnv(key)
	if !exists {
		return false, nil
	}
	if err := r.Set(key, value); err != nil {
		return false, err
	}
	return true, nil
}

// BootstrapEnv loads the environment files configured for this registry into
// its Environment. Variables already set are kept.
func (r *Registry) BootstrapEnv() error {
	loader := NewEnvLoader(r.options.Env, r.env)

	written, err := loader.Load()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(written))
	for key := range written {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	r.logger.Debug("loaded environment files",
		zap.Strings("files", loader.Files()),
		zap.Strings("variables", keys))
	return nil
}

// Environ returns the value of an environment variable, or def when unset.
func (r *Registry) Environ(key, def string) string {
	if value, exists := r.env.LookupEnv(key); exists {
		return value
	}
	return def
}

// setAll stages values in sorted key order.
func (r *Registry) setAll(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := r.Set(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}
