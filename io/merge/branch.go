package merge

import (
	"strings"

	"github.com/viant/sqlmerge/io/errx"
	"github.com/viant/sqlmerge/io/merge/config"
	"github.com/viant/sqlmerge/io/meta"
	"github.com/viant/sqlmerge/product/sqlserver"
)

//formatBranch renders WHEN clause, empty text means branch is omitted
func formatBranch(result config.MatchResult, typeMeta *meta.TypeMeta, actionFn config.ActionFn, on []string) (string, error) {
	if actionFn == nil {
		return "", nil
	}
	action := &config.Action{}
	actionFn(action)
	if action.Kind == config.None {
		return "", nil
	}
	if !result.Allows(action.Kind) {
		return "", errx.Configuration(opMerge, typeMeta.TableName, nil, "%v is not supported for %v branch", action.Kind, result)
	}
	sb := &strings.Builder{}
	sb.WriteString(result.Clause())
	if condition := strings.TrimSpace(action.Condition); condition != "" {
		sb.WriteString(" AND (")
		sb.WriteString(condition)
		sb.WriteString(")")
	}
	sb.WriteString(" THEN\n")
	switch action.Kind {
	case config.Insert:
		columns, err := insertColumns(typeMeta, action.Columns)
		if err != nil {
			return "", err
		}
		sb.WriteString("INSERT (")
		writeColumnList(sb, "", columns)
		sb.WriteString(") VALUES (")
		writeColumnList(sb, sourceAlias+".", columns)
		sb.WriteString(")")
	case config.Update:
		columns, err := updateColumns(typeMeta, action.Columns, on)
		if err != nil {
			return "", err
		}
		sb.WriteString("UPDATE SET ")
		for i, column := range columns {
			if i > 0 {
				sb.WriteString(", ")
			}
			quoted := sqlserver.QuoteIdentifier(column)
			sb.WriteString(quoted)
			sb.WriteString(" = ")
			sb.WriteString(sourceAlias)
			sb.WriteString(".")
			sb.WriteString(quoted)
		}
	case config.Delete:
		sb.WriteString("DELETE")
	}
	return sb.String(), nil
}

func insertColumns(typeMeta *meta.TypeMeta, subset []string) ([]string, error) {
	if len(subset) > 0 {
		return subsetColumns(typeMeta, subset, nil)
	}
	columns := columnNames(typeMeta.Insertable())
	if len(columns) == 0 {
		return nil, errx.Configuration(opMerge, typeMeta.TableName, nil, "no insertable columns")
	}
	return columns, nil
}

func updateColumns(typeMeta *meta.TypeMeta, subset []string, on []string) ([]string, error) {
	var columns []string
	var err error
	if len(subset) > 0 {
		if columns, err = subsetColumns(typeMeta, subset, on); err != nil {
			return nil, err
		}
	} else {
		columns = columnNames(typeMeta.Updatable(on))
	}
	if len(columns) == 0 {
		return nil, errx.Configuration(opMerge, typeMeta.TableName, subset, "no updatable columns")
	}
	return columns, nil
}

//subsetColumns validates explicit column subset, identity columns are dropped when identity is supplied
func subsetColumns(typeMeta *meta.TypeMeta, subset []string, identity []string) ([]string, error) {
	var result = make([]string, 0, len(subset))
	var invalid []string
	for _, column := range subset {
		property := typeMeta.Property(column)
		if property == nil || property.Ignored || property.Computed {
			invalid = append(invalid, column)
			continue
		}
		if identity != nil && (property.IsIdentity() || containsColumn(identity, property.Column)) {
			continue
		}
		if containsColumn(result, property.Column) {
			continue
		}
		result = append(result, property.Column)
	}
	if len(invalid) > 0 {
		return nil, errx.Configuration(opMerge, typeMeta.TableName, invalid, "unknown, computed or ignored column")
	}
	return result, nil
}

func columnNames(properties []*meta.Property) []string {
	var result = make([]string, len(properties))
	for i, property := range properties {
		result[i] = property.Column
	}
	return result
}

func containsColumn(columns []string, column string) bool {
	for _, candidate := range columns {
		if strings.EqualFold(candidate, column) {
			return true
		}
	}
	return false
}

func writeColumnList(sb *strings.Builder, prefix string, columns []string) {
	for i, column := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(prefix)
		sb.WriteString(sqlserver.QuoteIdentifier(column))
	}
}
