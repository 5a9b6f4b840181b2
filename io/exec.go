package io

import (
	"context"
	"time"
)

//Exec runs SQL with positional args, timeout bounds this statement only, returns affected rows
func Exec(ctx context.Context, querier Querier, SQL string, args []interface{}, timeout time.Duration) (int64, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	result, err := querier.ExecContext(ctx, SQL, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
