package load

import (
	"strings"

	"github.com/google/uuid"
)

//DefaultTransientTable represents default staging table pattern, connection scoped temp table
const DefaultTransientTable = "#merge_${Rand}"

//Transient represents staging table configuration
type Transient struct {
	TableName string
}

//Table returns an expanded table name with a random part if needed
func (t *Transient) Table() string {
	tableName := t.TableName
	if tableName == "" {
		tableName = DefaultTransientTable
	}
	if index := strings.Index(tableName, "${Rand}"); index != -1 {
		return strings.ReplaceAll(tableName, "${Rand}", strings.ReplaceAll(uuid.New().String(), "-", ""))
	}
	return tableName
}
