package sqlserver

import (
	"strconv"
	"strings"
)

const (
	// Name represents product name
	Name = "mssql"
	// DriverName represents go-mssqldb driver name
	DriverName = "sqlserver"
	// Placeholder represents positional parameter prefix
	Placeholder = "@p"
)

//QuoteIdentifier quotes a single identifier with brackets, closing brackets are doubled
func QuoteIdentifier(name string) string {
	if IsQuoted(name) {
		return name
	}
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

//IsQuoted returns true if name is already bracket quoted
func IsQuoted(name string) bool {
	return len(name) > 1 && name[0] == '[' && name[len(name)-1] == ']'
}

//QuoteTable quotes schema qualified table name, i.e. dbo.Foo => [dbo].[Foo]
func QuoteTable(name string) string {
	parts := splitQualified(name)
	for i, part := range parts {
		parts[i] = QuoteIdentifier(strings.TrimSpace(part))
	}
	return strings.Join(parts, ".")
}

//Unquote removes brackets from quoted identifier
func Unquote(name string) string {
	if !IsQuoted(name) {
		return name
	}
	return strings.ReplaceAll(name[1:len(name)-1], "]]", "]")
}

// splitQualified splits on dots that are not inside brackets
func splitQualified(name string) []string {
	var result []string
	depth := 0
	start := 0
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '.':
			if depth == 0 {
				result = append(result, name[start:i])
				start = i + 1
			}
		}
	}
	return append(result, name[start:])
}

//PlaceholderGenerator represents placeholder
type PlaceholderGenerator struct {
}

//Resolver returns function that returns @p1, @p2 ... placeholders
func (p *PlaceholderGenerator) Resolver() func() string {
	counter := 0
	return func() string {
		counter++
		return Placeholder + strconv.Itoa(counter)
	}
}
