package merge

import (
	"github.com/viant/sqlmerge/io/load"
	"github.com/viant/sqlmerge/io/meta"
)

const (
	opMerge  = "merge"
	opUpsert = "upsert"
	opVerify = "verify"
)

//Statement represents assembled MERGE statement
type Statement struct {
	SQL  string
	Args []interface{}
	//Table is quoted target table
	Table string
	Rows  int
	//Source describes source relation, for staged sources it holds staging table DDL
	Source *load.Source
}

//prepared represents statement parts resolved before any I/O
type prepared struct {
	typeMeta *meta.TypeMeta
	on       []string
	branches []string
	source   []*meta.Property
	columns  []string
	rowAt    func(index int) []interface{}
	count    int
}

func (p *prepared) build(source *load.Source) *Statement {
	return &Statement{
		SQL:    (&Builder{}).Build(p.typeMeta.TableName, source.Ref, p.on, p.branches),
		Args:   source.Args,
		Table:  p.typeMeta.TableName,
		Rows:   p.count,
		Source: source,
	}
}
