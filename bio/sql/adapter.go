/*
Package sql reads datasets from tables of SQL databases through
adapters for each database engine.
*/
package sql

import (
	"context"
	dbsql "database/sql"
)

/*
Adapter is an interface providing the methods needed to read a dataset
from a table of a database.
*/
type Adapter interface {
	// ColumnName validates a feature or table name and returns the
	// identifier to use for it in queries.
	ColumnName(string) (string, error)

	// ListColumns returns the names of the columns of a table in order.
	ListColumns(ctx context.Context, table string) ([]string, error)

	// IterateOnRows calls lambda with the index and values of every row
	// of the table, restricted to the given columns, until lambda returns
	// false or an error.
	IterateOnRows(ctx context.Context, table string, columns []string, lambda func(int, map[string]interface{}) (bool, error)) error

	Close() error
}

/*
IterateOnQuery takes a context, a database, a query with its arguments,
the names of the columns it selects and a lambda, runs the query and
calls the lambda with the index and the values of every row until it
returns false or an error. Values are those returned by the driver,
nil for NULL.
*/
func IterateOnQuery(ctx context.Context, db *dbsql.DB, query string, args []interface{}, columns []string, lambda func(int, map[string]interface{}) (bool, error)) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		err = rows.Scan(pointers...)
		if err != nil {
			return err
		}
		rawRow := make(map[string]interface{}, len(columns))
		for i, c := range columns {
			rawRow[c] = values[i]
		}
		ok, err := lambda(j, rawRow)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	err = rows.Err()
	if err != nil {
		return err
	}
	return rows.Close()
}
