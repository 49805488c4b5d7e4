package sql

import (
	"context"
	"fmt"

	"github.com/pbanos/id3/bio"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"go.trai.ch/zerr"
)

/*
ReadDataset takes a context, an adapter, the name of a table, a slice of
features and the name of the label column, and returns the dataset with
the rows of the table or an error.

When features are given, only their columns are read, in the order of the
slice, and the values are converted according to each feature. Otherwise
every column of the table is read as a string feature. When the label is
empty, the last column is the label.
*/
func ReadDataset(ctx context.Context, a Adapter, table string, features []*feature.Feature, label string) (*dataset.Dataset, error) {
	table, err := a.ColumnName(table)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		columns, err := a.ListColumns(ctx, table)
		if err != nil {
			return nil, zerr.Wrap(err, fmt.Sprintf("listing columns of table %s", table))
		}
		for _, c := range columns {
			features = append(features, feature.New(c, feature.StringKind, nil))
		}
	}
	columns := make([]string, 0, len(features))
	for _, f := range features {
		c, err := a.ColumnName(f.Name())
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	var rows [][]feature.Value
	err = a.IterateOnRows(ctx, table, columns, func(i int, rawRow map[string]interface{}) (bool, error) {
		row := make([]feature.Value, 0, len(features))
		for j, f := range features {
			v, err := f.Convert(rawRow[columns[j]])
			if err != nil {
				return false, zerr.With(zerr.Wrap(err, fmt.Sprintf("reading row %d", i+1)), "row", i+1)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
		return true, ctx.Err()
	})
	if err != nil {
		return nil, zerr.Wrap(err, fmt.Sprintf("reading table %s", table))
	}
	names := make([]string, 0, len(features))
	for _, f := range features {
		names = append(names, f.Name())
	}
	return dataset.New(names, bio.LabelOrLast(label, names), rows)
}
