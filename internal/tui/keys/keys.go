package keys

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMapToSlice takes a struct of fields of type key.Binding and returns it as
// a slice instead. Fields of any other type are skipped.
func KeyMapToSlice(t any) (bindings []key.Binding) {
	v := reflect.ValueOf(t)
	if v.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		if binding, ok := v.Field(i).Interface().(key.Binding); ok {
			bindings = append(bindings, binding)
		}
	}
	return
}
