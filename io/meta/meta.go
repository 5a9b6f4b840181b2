package meta

import (
	"reflect"
	"strings"

	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/product/sqlserver"
)

//TableNamer is implemented by records declaring their table
type TableNamer interface {
	TableName() string
}

//TypeMeta represents record type column model
type TypeMeta struct {
	Type                  reflect.Type
	TableName             string
	Properties            []*Property
	PropertiesKey         []*Property
	PropertiesExplicitKey []*Property
	PropertiesComputed    []*Property
	PropertiesIgnored     []*Property
	byColumn              map[string]*Property
}

//New creates dynamic type meta for map based records
func New(table string, properties ...*Property) *TypeMeta {
	ret := &TypeMeta{TableName: sqlserver.QuoteTable(table)}
	for _, property := range properties {
		ret.add(property)
	}
	ret.ensureConventionalKey()
	return ret
}

//Property returns property for column name, lookup is case insensitive
func (m *TypeMeta) Property(column string) *Property {
	return m.byColumn[strings.ToLower(sqlserver.Unquote(column))]
}

//KeyAndExplicit returns key columns followed by explicit key columns
func (m *TypeMeta) KeyAndExplicit() []string {
	var result = make([]string, 0, len(m.PropertiesKey)+len(m.PropertiesExplicitKey))
	for _, property := range m.PropertiesKey {
		result = append(result, property.Column)
	}
	for _, property := range m.PropertiesExplicitKey {
		result = append(result, property.Column)
	}
	return result
}

//Insertable returns non computed, non ignored properties
func (m *TypeMeta) Insertable() []*Property {
	var result = make([]*Property, 0, len(m.Properties))
	for _, property := range m.Properties {
		if property.Ignored || property.Computed {
			continue
		}
		result = append(result, property)
	}
	return result
}

//Updatable returns insertable properties that are not part of identity
func (m *TypeMeta) Updatable(identity []string) []*Property {
	var result = make([]*Property, 0, len(m.Properties))
	for _, property := range m.Insertable() {
		if property.IsIdentity() || containsFold(identity, property.Column) {
			continue
		}
		result = append(result, property)
	}
	return result
}

//Source returns properties transferred into the source relation, computed properties are only kept when used by ON predicate
func (m *TypeMeta) Source(on []string) []*Property {
	var result = make([]*Property, 0, len(m.Properties))
	for _, property := range m.Properties {
		if property.Ignored {
			continue
		}
		if property.Computed && !containsFold(on, property.Column) {
			continue
		}
		result = append(result, property)
	}
	return result
}

//Values returns record values for supplied properties
func (m *TypeMeta) Values(record interface{}, properties []*Property) []interface{} {
	var result = make([]interface{}, len(properties))
	for i, property := range properties {
		result[i] = property.Value(record)
	}
	return result
}

func (m *TypeMeta) add(property *Property) {
	if m.byColumn == nil {
		m.byColumn = map[string]*Property{}
	}
	property.Column = sqlserver.Unquote(property.Column)
	m.Properties = append(m.Properties, property)
	m.byColumn[strings.ToLower(property.Column)] = property
	if property.Ignored {
		m.PropertiesIgnored = append(m.PropertiesIgnored, property)
		return
	}
	if property.Key {
		m.PropertiesKey = append(m.PropertiesKey, property)
	}
	if property.ExplicitKey {
		m.PropertiesExplicitKey = append(m.PropertiesExplicitKey, property)
	}
	if property.Computed {
		m.PropertiesComputed = append(m.PropertiesComputed, property)
	}
}

func (m *TypeMeta) ensureConventionalKey() {
	if len(m.PropertiesKey) > 0 || len(m.PropertiesExplicitKey) > 0 {
		return
	}
	for _, property := range m.Properties {
		if property.Ignored {
			continue
		}
		if strings.EqualFold(property.Name, "id") || strings.EqualFold(property.Column, "id") {
			property.Key = true
			m.PropertiesKey = append(m.PropertiesKey, property)
			return
		}
	}
}

func containsFold(names []string, name string) bool {
	for _, candidate := range names {
		if strings.EqualFold(sqlserver.Unquote(candidate), name) {
			return true
		}
	}
	return false
}

//Of returns type meta for a record, pointer, slice or array of records
func Of(record interface{}) (*TypeMeta, error) {
	rType := io.EnsureDereference(record)
	if rType == nil {
		return nil, errx.Input("meta", "record was nil")
	}
	if rType.Kind() == reflect.Interface {
		accessor, size, err := io.Values(record)
		if err != nil || size == 0 {
			return nil, errx.Configuration("meta", "", nil, "unable to resolve element type of %T", record)
		}
		return Of(accessor(0))
	}
	return Lookup(rType)
}
