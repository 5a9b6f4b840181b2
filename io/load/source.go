package load

import (
	"context"
	"strings"

	"github.com/viant/sqlmerge/io"
	"github.com/viant/sqlmerge/product/sqlserver"
)

//Source represents MERGE source relation
type Source struct {
	//Ref is an inline row constructor or staging table name
	Ref     string
	Args    []interface{}
	Columns []string
	Staged  bool
	//Table is unquoted staging table name
	Table string
	//DDL creates staging table
	DDL string
}

//Drop removes staging table
func (s *Source) Drop(ctx context.Context, querier io.Querier) error {
	if !s.Staged {
		return nil
	}
	_, err := querier.ExecContext(ctx, "DROP TABLE "+s.Ref)
	return err
}

//inlineSource returns single row constructor, i.e. (SELECT @p1 AS [Id], @p2 AS [Name])
func inlineSource(columns []string, values []interface{}) *Source {
	placeholders := (&sqlserver.PlaceholderGenerator{}).Resolver()
	sb := strings.Builder{}
	sb.WriteString("(SELECT ")
	for i, column := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholders())
		sb.WriteString(" AS ")
		sb.WriteString(sqlserver.QuoteIdentifier(column))
	}
	sb.WriteString(")")
	return &Source{Ref: sb.String(), Args: values, Columns: columns}
}

//stagingDDL returns SELECT INTO statement copying column types of target, UNION ALL drops IDENTITY property
func stagingDDL(stage, target string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = sqlserver.QuoteIdentifier(column)
	}
	columnList := strings.Join(quoted, ", ")
	sb := strings.Builder{}
	sb.WriteString("SELECT TOP 0 ")
	sb.WriteString(columnList)
	sb.WriteString(" INTO ")
	sb.WriteString(stage)
	sb.WriteString(" FROM ")
	sb.WriteString(target)
	sb.WriteString(" UNION ALL SELECT TOP 0 ")
	sb.WriteString(columnList)
	sb.WriteString(" FROM ")
	sb.WriteString(target)
	return sb.String()
}
