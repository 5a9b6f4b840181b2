package merge

import (
	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/io/merge/config"
	"github.com/viant/sqlmerge/io/meta"
)

//OnColumns returns ON predicate columns, keys followed by explicit keys unless keyFn overrides them
func OnColumns(typeMeta *meta.TypeMeta, keyFn config.KeyFn) ([]string, error) {
	key := &config.Key{}
	if keyFn == nil {
		key.Column(typeMeta.KeyAndExplicit()...)
	} else {
		keyFn(key)
	}
	if len(key.Columns) == 0 {
		return nil, errx.MissingIdentity(opMerge, typeMeta.TableName)
	}
	var result = make([]string, 0, len(key.Columns))
	var unknown []string
	for _, column := range key.Columns {
		property := typeMeta.Property(column)
		if property == nil || property.Ignored {
			unknown = append(unknown, column)
			continue
		}
		if containsColumn(result, property.Column) {
			continue
		}
		result = append(result, property.Column)
	}
	if len(unknown) > 0 {
		return nil, errx.Configuration(opMerge, typeMeta.TableName, unknown, "unknown key column")
	}
	return result, nil
}
