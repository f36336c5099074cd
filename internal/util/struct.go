package util

import (
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized checks whether all fields of the given struct pointer
// are non-zero, except fields tagged with `wire:"-"` which are initialized
// outside the dependency graph.
func IsStructInitialized(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return errors.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("wire") == "-" {
			continue
		}

		if v.Field(i).IsZero() {
			return errors.Errorf("field %s.%s is not initialized", t.Name(), t.Field(i).Name)
		}
	}

	return nil
}
