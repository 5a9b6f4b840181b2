package io

import (
	"database/sql/driver"
	"reflect"
	"time"
)

var (
	typeTime   = reflect.TypeOf(time.Time{})
	typeBytes  = reflect.TypeOf([]byte{})
	typeValuer = reflect.TypeOf((*driver.Valuer)(nil)).Elem()
)

//EnsureDereference returns Type of value dereferenced e.g. if any is type of *Foo, it will return Foo
func EnsureDereference(value interface{}) reflect.Type {
	rType := reflect.TypeOf(value)
	if rType == nil {
		return nil
	}
	return DereferenceType(rType)
}

//DereferenceType returns element type for pointers, slices and arrays, e.g. []*Foo gives Foo
func DereferenceType(rType reflect.Type) reflect.Type {
	for {
		switch rType.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array:
			if rType == typeBytes {
				return rType
			}
			rType = rType.Elem()
		default:
			return rType
		}
	}
}

//IsBindable returns true if field type can be passed as a statement argument
func IsBindable(rType reflect.Type) bool {
	if rType.Implements(typeValuer) || reflect.PtrTo(rType).Implements(typeValuer) {
		return true
	}
	switch rType.Kind() {
	case reflect.Ptr:
		return IsBindable(rType.Elem())
	case reflect.Struct:
		return rType == typeTime
	case reflect.Slice:
		return rType.Elem().Kind() == reflect.Uint8
	case reflect.Array:
		return rType.Elem().Kind() == reflect.Uint8
	case reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128, reflect.Uintptr:
		return false
	}
	return true
}
