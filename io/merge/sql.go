package merge

import (
	"strings"

	"github.com/viant/sqlmerge/product/sqlserver"
)

const (
	targetAlias = "Target"
	sourceAlias = "Source"
)

//Builder represents MERGE statement builder
type Builder struct{}

//Build assembles MERGE statement, branches are rendered WHEN clauses in statement order
func (b *Builder) Build(target, source string, on []string, branches []string) string {
	sb := &strings.Builder{}
	sb.WriteString("MERGE INTO ")
	sb.WriteString(target)
	sb.WriteString(" AS ")
	sb.WriteString(targetAlias)
	sb.WriteString("\nUSING ")
	sb.WriteString(source)
	sb.WriteString(" AS ")
	sb.WriteString(sourceAlias)
	sb.WriteString("\nON (")
	for i, column := range on {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		quoted := sqlserver.QuoteIdentifier(column)
		sb.WriteString(targetAlias)
		sb.WriteString(".")
		sb.WriteString(quoted)
		sb.WriteString(" = ")
		sb.WriteString(sourceAlias)
		sb.WriteString(".")
		sb.WriteString(quoted)
	}
	sb.WriteString(")")
	for _, branch := range branches {
		if branch == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(branch)
	}
	sb.WriteString("\n;")
	return sb.String()
}
