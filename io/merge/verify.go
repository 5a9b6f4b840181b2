package merge

import (
	"fmt"
	"strings"

	"github.com/ha1tch/tsqlparser"
	"github.com/ha1tch/tsqlparser/ast"
	"github.com/viant/sqlmerge/io/errx"
)

//Verify parses statement with T-SQL parser and checks it yields a single MERGE statement
func Verify(table, SQL string) error {
	program, errs := tsqlparser.Parse(SQL)
	if len(errs) > 0 {
		var messages = make([]string, len(errs))
		for i, e := range errs {
			messages[i] = fmt.Sprintf("%v", e)
		}
		return errx.Configuration(opVerify, table, nil, "invalid statement: %v", strings.Join(messages, "; "))
	}
	if program == nil {
		return errx.Configuration(opVerify, table, nil, "no statement parsed")
	}
	merges := 0
	for _, stmt := range program.Statements {
		if _, ok := stmt.(*ast.MergeStatement); ok {
			merges++
		}
	}
	if merges != 1 {
		return errx.Configuration(opVerify, table, nil, "expected 1 MERGE statement, but had %v", merges)
	}
	return nil
}
