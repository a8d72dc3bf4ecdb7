// File: roots/wp-config/file.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	formatTOML = "toml"
	formatJSON = "json"
	formatYAML = "yaml"
)

// SetFile stages every top-level key of a TOML, YAML or JSON definition file.
// The format is taken from the extension, then sniffed from content. The
// document must be a table of constant names; nested tables become structured
// values. Keys are staged in sorted order through Set, so committed keys are
// rejected.
func (r *Registry) SetFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to read definition file '%s': %w", path, err)
	}

	format := formatFromExtension(path)
	if format == "" {
		format = sniffFormat(data)
	}

	values, err := parseDefinitions(format, data)
	if err != nil {
		return fmt.Errorf("%w '%s': %w", ErrInvalidDefinitionFile, path, err)
	}
	return r.setAll(values)
}

// parseDefinitions decodes a definition document into its top-level key table.
func parseDefinitions(format string, data []byte) (map[string]any, error) {
	var doc any
	switch format {
	case formatTOML:
		table := make(map[string]any)
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("TOML syntax: %w", err)
		}
		return table, nil
	case formatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("JSON syntax: %w", err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("YAML syntax: %w", err)
		}
	default:
		return nil, errors.New("not TOML, YAML or JSON")
	}

	switch table := doc.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return table, nil
	case []any:
		return nil, errors.New("top level is a list, expected a table of constant names")
	case map[any]any:
		return nil, errors.New("top level has non-string keys, expected a table of constant names")
	default:
		return nil, fmt.Errorf("top level is a %T scalar, expected a table of constant names", doc)
	}
}

// Dump writes the committed values of the staged keys to a TOML file atomically.
func (r *Registry) Dump(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(r.Committed()); err != nil {
		return fmt.Errorf("failed to marshal constants to TOML: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// formatFromExtension maps a file extension to a definition format, "" when unknown.
func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return formatTOML
	case ".json":
		return formatJSON
	case ".yaml", ".yml":
		return formatYAML
	}
	return ""
}

// sniffFormat guesses the format of an extensionless definition file. YAML is
// the fallback since it accepts most of the other two.
func sniffFormat(data []byte) string {
	if json.Valid(data) {
		return formatJSON
	}
	probe := make(map[string]any)
	if err := toml.Unmarshal(data, &probe); err == nil {
		return formatTOML
	}
	return formatYAML
}

// writeFileAtomic writes data to a temp file beside path and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("dump directory '%s': %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("dump temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // fails harmlessly after the rename

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("dump write '%s': %w", tmpPath, err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("dump permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("dump rename to '%s': %w", path, err)
	}
	return nil
}
