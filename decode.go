package config

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Scan decodes the committed values of the staged keys into target, which must
// be a non-nil pointer to a struct or map. Values are copied as committed;
// no type conversion is attempted.
func (r *Registry) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: r.options.TagName,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(r.Committed()); err != nil {
		return fmt.Errorf("failed to scan constants into %T: %w", target, err)
	}
	return nil
}
