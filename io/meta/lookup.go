package meta

import (
	"reflect"
	"strings"
	"sync"

	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/product/sqlserver"
	"github.com/viant/xunsafe"
)

//types caches resolved metadata for the process lifetime, entries are never evicted
var types = &sync.Map{}

//Lookup returns cached type meta using default sqlx tag
func Lookup(rType reflect.Type) (*TypeMeta, error) {
	return LookupWithTag(rType, io.TagSqlx)
}

//LookupWithTag returns cached type meta for struct type using supplied tag name
func LookupWithTag(rType reflect.Type, tagName string) (*TypeMeta, error) {
	if rType == nil {
		return nil, errx.Input("meta", "type was nil")
	}
	rType = io.DereferenceType(rType)
	key := cacheKey{rType: rType, tag: tagName}
	if cached, ok := types.Load(key); ok {
		return cached.(*TypeMeta), nil
	}
	typeMeta, err := resolve(rType, tagName)
	if err != nil {
		return nil, err
	}
	actual, _ := types.LoadOrStore(key, typeMeta)
	return actual.(*TypeMeta), nil
}

type cacheKey struct {
	rType reflect.Type
	tag   string
}

func resolve(rType reflect.Type, tagName string) (*TypeMeta, error) {
	if rType.Kind() != reflect.Struct {
		return nil, errx.Configuration("meta", "", nil, "unsupported record type %v, expected struct", rType.String())
	}
	ret := &TypeMeta{Type: rType, TableName: tableName(rType)}
	for i := 0; i < rType.NumField(); i++ {
		structField := rType.Field(i)
		if structField.PkgPath != "" {
			continue
		}
		tag := io.ParseTag(structField.Tag.Get(tagName))
		if !tag.Transient && !io.IsBindable(structField.Type) {
			continue
		}
		property := &Property{
			Name:        structField.Name,
			Column:      tag.ColumnName(structField),
			Type:        structField.Type,
			Key:         tag.Key,
			ExplicitKey: tag.ExplicitKey,
			Computed:    tag.Computed,
			Ignored:     tag.Transient,
			field:       xunsafe.NewField(structField),
		}
		ret.add(property)
	}
	ret.ensureConventionalKey()
	return ret, nil
}

func tableName(rType reflect.Type) string {
	if name := declaredTableName(rType); name != "" {
		return sqlserver.QuoteTable(name)
	}
	return sqlserver.QuoteTable(rType.Name() + "s")
}

func declaredTableName(rType reflect.Type) string {
	namerType := reflect.TypeOf((*TableNamer)(nil)).Elem()
	switch {
	case rType.Implements(namerType):
		if namer, ok := reflect.Zero(rType).Interface().(TableNamer); ok {
			return strings.TrimSpace(namer.TableName())
		}
	case reflect.PtrTo(rType).Implements(namerType):
		if namer, ok := reflect.New(rType).Interface().(TableNamer); ok {
			return strings.TrimSpace(namer.TableName())
		}
	}
	return ""
}
