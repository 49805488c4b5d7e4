/*
Package pgadapter provides an implementation of the
Adapter interface in the bio/sql package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	biosql "github.com/pbanos/id3/bio/sql"
	"go.trai.ch/zerr"
)

// ErrInvalidName is returned for table or column names that cannot be quoted.
var ErrInvalidName = zerr.New("invalid name")

type adapter struct {
	db *sql.DB
}

/*
New takes a context, a PostgreSQL database connection URL and a maximum
number of open connections and returns an Adapter that works on the
database or an error if the URL cannot be used. The connection is
established on first use. A maxConns of 0 or less means no limit.
*/
func New(ctx context.Context, url string, maxConns int) (biosql.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxConns)
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if featureName == "" {
		return "", zerr.Wrap(ErrInvalidName, "empty name")
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", zerr.With(zerr.Wrap(ErrInvalidName, fmt.Sprintf(`name '%s' contains invalid character '"'`, featureName)), "name", featureName)
	}
	return featureName, nil
}

func (a *adapter) ListColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" LIMIT 0`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Columns()
}

func (a *adapter) IterateOnRows(ctx context.Context, table string, columns []string, lambda func(int, map[string]interface{}) (bool, error)) error {
	query := fmt.Sprintf(`SELECT "%s" FROM "%s"`, strings.Join(columns, `", "`), table)
	return biosql.IterateOnQuery(ctx, a.db, query, nil, columns, lambda)
}

func (a *adapter) Close() error {
	return a.db.Close()
}
