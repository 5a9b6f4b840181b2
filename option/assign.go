package option

import (
	"reflect"
)

//Assign copies matching options into supplied pointers, returns true if at least one was assigned
func Assign(options []Option, supplied ...interface{}) bool {
	if len(options) == 0 || len(supplied) == 0 {
		return false
	}
	var targets = make(map[reflect.Type]reflect.Value, len(supplied))
	for _, target := range supplied {
		targetValue := reflect.ValueOf(target)
		targets[targetValue.Type().Elem()] = targetValue.Elem()
	}
	assigned := false
	for _, candidate := range options {
		if candidate == nil {
			continue
		}
		value := reflect.ValueOf(candidate)
		target, ok := targets[value.Type()]
		if !ok {
			for targetType, targetValue := range targets {
				if targetType.Kind() == reflect.Interface && value.Type().Implements(targetType) {
					target, ok = targetValue, true
					break
				}
			}
		}
		if !ok {
			continue
		}
		target.Set(value)
		assigned = true
	}
	return assigned
}
