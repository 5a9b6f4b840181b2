package merge_test

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/denisenkom/go-mssqldb"
	"github.com/stretchr/testify/require"
	"github.com/viant/sqlmerge/product/sqlserver"
)

func TestService_Live(t *testing.T) {
	dsn := os.Getenv("TEST_MSSQL_DSN")
	if dsn == "" {
		t.Skip("set TEST_MSSQL_DSN before running test")
	}
	db, err := sql.Open(sqlserver.DriverName, dsn)
	require.Nil(t, err)
	defer db.Close()
	runScenarios(t, db)
}
