/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the bio/sql package that works over an SQLite3 database
file.
*/
package sqlite3adapter

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	biosql "github.com/pbanos/id3/bio/sql"
	"go.trai.ch/zerr"
)

// ErrInvalidName is returned for table or column names that cannot be quoted.
var ErrInvalidName = zerr.New("invalid name")

type adapter struct {
	db *sql.DB
}

/*
New takes a context, a path to an SQLite3 database file and a maximum number
of open connections and returns an Adapter that reads from the file's
database or an error if it fails to open it. The database is opened read-only.
A maxConns of 0 or less means no limit.
*/
func New(ctx context.Context, path string, maxConns int) (biosql.Adapter, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.Wrap(err, fmt.Sprintf("opening sqlite3 database %s", path))
	}
	dsn := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	db, err := sql.Open("sqlite3", dsn.String())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxConns)
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, zerr.Wrap(err, fmt.Sprintf("opening sqlite3 database %s", path))
	}
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
