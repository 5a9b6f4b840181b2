package meta

import (
	"reflect"
	"strings"

	"github.com/viant/xunsafe"
)

//Property represents record field mapped to a column
type Property struct {
	Name        string
	Column      string
	Type        reflect.Type
	Key         bool
	ExplicitKey bool
	Computed    bool
	Ignored     bool
	field       *xunsafe.Field
}

//NewProperty creates dynamic property read from map records by column name
func NewProperty(column string, flags ...Flag) *Property {
	ret := &Property{Name: column, Column: column}
	for _, flag := range flags {
		flag(ret)
	}
	return ret
}

//Flag represents property flag setter
type Flag func(p *Property)

//Key marks property as a key
func Key() Flag {
	return func(p *Property) { p.Key = true }
}

//ExplicitKey marks property as caller supplied key
func ExplicitKey() Flag {
	return func(p *Property) { p.ExplicitKey = true }
}

//Computed marks property as server computed
func Computed() Flag {
	return func(p *Property) { p.Computed = true }
}

//Ignored excludes property from generated statements
func Ignored() Flag {
	return func(p *Property) { p.Ignored = true }
}

//IsIdentity returns true for key or explicit key
func (p *Property) IsIdentity() bool {
	return p.Key || p.ExplicitKey
}

//Value returns property value for struct pointer or map record
func (p *Property) Value(record interface{}) interface{} {
	if p.field == nil {
		return p.mapValue(record)
	}
	ptr := xunsafe.AsPointer(record)
	if ptr == nil {
		return nil
	}
	value := p.field.Interface(ptr)
	if p.field.Type.Kind() == reflect.Ptr {
		if reflect.ValueOf(value).IsNil() {
			return nil
		}
	}
	return value
}

func (p *Property) mapValue(record interface{}) interface{} {
	var values map[string]interface{}
	switch actual := record.(type) {
	case map[string]interface{}:
		values = actual
	case *map[string]interface{}:
		if actual == nil {
			return nil
		}
		values = *actual
	default:
		return nil
	}
	if value, ok := values[p.Column]; ok {
		return value
	}
	for k, v := range values {
		if strings.EqualFold(k, p.Column) {
			return v
		}
	}
	return nil
}
