package io

import (
	"fmt"
	"reflect"

	"github.com/viant/xunsafe"
)

//ValueAccessor represents function that returns value at given index.
type ValueAccessor = func(index int) interface{}

//IsNil returns true for nil interface or nil pointer, nil slices are not nil records
func IsNil(any interface{}) bool {
	if any == nil {
		return true
	}
	value := reflect.ValueOf(any)
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface:
		return value.IsNil()
	}
	return false
}

//Values return function to access value at position, struct elements are returned as pointers
func Values(any interface{}) (ValueAccessor, int, error) {
	switch actual := any.(type) {
	case []interface{}:
		return func(index int) interface{} {
			return actual[index]
		}, len(actual), nil
	case []map[string]interface{}:
		return func(index int) interface{} {
			return actual[index]
		}, len(actual), nil
	case map[string]interface{}:
		return single(actual), 1, nil
	}
	anyValue := reflect.ValueOf(any)
	switch anyValue.Kind() {
	case reflect.Ptr:
		if anyValue.IsNil() {
			return nil, 0, fmt.Errorf("unsupported nil: %T", any)
		}
		deref := anyValue.Elem()
		switch deref.Kind() {
		case reflect.Slice:
			return sliceAccessor(deref)
		case reflect.Array:
			return arrayAccessor(deref)
		case reflect.Struct, reflect.Map:
			return single(any), 1, nil
		}
	case reflect.Struct:
		addressable := reflect.New(anyValue.Type())
		addressable.Elem().Set(anyValue)
		return single(addressable.Interface()), 1, nil
	case reflect.Slice:
		return sliceAccessor(anyValue)
	case reflect.Array:
		return arrayAccessor(anyValue)
	}
	return nil, 0, fmt.Errorf("unsupported: %T", any)
}

func single(value interface{}) ValueAccessor {
	return func(index int) interface{} {
		return value
	}
}

func sliceAccessor(sliceValue reflect.Value) (ValueAccessor, int, error) {
	sliceLen := sliceValue.Len()
	if sliceLen == 0 {
		return single(nil), 0, nil
	}
	switch sliceValue.Type().Elem().Kind() {
	case reflect.Struct, reflect.Ptr:
		slicePtr := reflect.New(sliceValue.Type())
		slicePtr.Elem().Set(sliceValue)
		return asSliceAccessor(slicePtr.Interface(), sliceValue.Type()), sliceLen, nil
	}
	return func(index int) interface{} {
		return sliceValue.Index(index).Interface()
	}, sliceLen, nil
}

func asSliceAccessor(slicePtr interface{}, sliceType reflect.Type) ValueAccessor {
	aSliceType := xunsafe.NewSlice(sliceType)
	return func(index int) interface{} {
		ptr := xunsafe.AsPointer(slicePtr)
		return aSliceType.ValuePointerAt(ptr, index)
	}
}

func arrayAccessor(arrayValue reflect.Value) (ValueAccessor, int, error) {
	size := arrayValue.Len()
	return func(index int) interface{} {
		item := arrayValue.Index(index)
		if item.Kind() == reflect.Struct {
			if item.CanAddr() {
				return item.Addr().Interface()
			}
			addressable := reflect.New(item.Type())
			addressable.Elem().Set(item)
			return addressable.Interface()
		}
		return item.Interface()
	}, size, nil
}
