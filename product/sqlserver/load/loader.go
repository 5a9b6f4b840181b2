package load

import (
	"context"
	"database/sql"
	"encoding/json"

	mssql "github.com/denisenkom/go-mssqldb"
	"github.com/pkg/errors"
	"github.com/viant/sqlmerge/loption"
)

//Preparer represents statement preparer, satisfied by *sql.Tx and *sql.Conn
type Preparer interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

//RowAccessor returns statement arguments for row at index
type RowAccessor func(index int) []interface{}

//Loader transfers rows with the bulk copy protocol
type Loader struct{}

//New creates a loader
func New() *Loader {
	return &Loader{}
}

//Load copies count rows into table, returns number of rows reported by the server
func (l *Loader) Load(ctx context.Context, preparer Preparer, table string, columns []string, rowAt RowAccessor, count int, options ...loption.Option) (int, error) {
	opts := loption.NewOptions(options...)
	bulkOptions, err := BulkOptions(opts)
	if err != nil {
		return 0, err
	}
	SQL := mssql.CopyIn(table, bulkOptions, columns...)
	stmt, err := preparer.PrepareContext(ctx, SQL)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to prepare bulk copy into %v", table)
	}
	defer stmt.Close()

	batch := bulkOptions.RowsPerBatch
	progress := batch > 0 && opts.HasNotify()
	for i := 0; i < count; i++ {
		if _, err = stmt.ExecContext(ctx, rowAt(i)...); err != nil {
			return 0, errors.Wrapf(err, "failed to copy row %v into %v", i, table)
		}
		if progress && (i+1)%batch == 0 {
			opts.Notify(i + 1)
		}
	}
	result, err := stmt.ExecContext(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to flush bulk copy into %v", table)
	}
	loaded, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read bulk copy count for %v", table)
	}
	opts.Notify(int(loaded))
	return int(loaded), nil
}

//BulkOptions returns driver bulk options decoded from JSON hint
func BulkOptions(opts *loption.Options) (mssql.BulkOptions, error) {
	var bulkOptions = mssql.BulkOptions{}
	if hint := opts.GetHint(); hint != "" {
		if err := json.Unmarshal([]byte(hint), &bulkOptions); err != nil {
			return bulkOptions, errors.Wrapf(err, "invalid bulk copy hint: %s", hint)
		}
	}
	if rows := opts.GetRowsPerBatch(); rows > 0 {
		bulkOptions.RowsPerBatch = rows
	}
	return bulkOptions, nil
}
