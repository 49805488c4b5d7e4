/*
Package dataset provides the in-memory tabular data a decision tree is
grown from: ordered named columns, one of them the label, and rows of
discrete values.
*/
package dataset

import (
	"fmt"
	"math"
	"strings"

	"github.com/pbanos/id3/feature"
	"go.trai.ch/zerr"
)

var (
	// ErrNoColumns is returned when building a dataset without columns.
	ErrNoColumns = zerr.New("dataset has no columns")

	// ErrEmptyColumnName is returned when a column has an empty name.
	ErrEmptyColumnName = zerr.New("empty column name")

	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = zerr.New("duplicate column")

	// ErrMissingLabel is returned when the label column is not among the columns.
	ErrMissingLabel = zerr.New("label column not found")

	// ErrRaggedRow is returned when a row does not have one value per column.
	ErrRaggedRow = zerr.New("row length does not match columns")

	// ErrMixedKinds is returned when a column holds values of more than one kind.
	ErrMixedKinds = zerr.New("column mixes value kinds")

	// ErrUnknownColumn is returned when referring to a column the dataset does not have.
	ErrUnknownColumn = zerr.New("unknown column")

	// ErrDropLabel is returned when trying to remove the label column.
	ErrDropLabel = zerr.New("cannot remove label column")
)

/*
Dataset represents a collection of samples as rows of discrete values
under named columns, one of which is the label the tree learns to predict.

A Dataset is immutable: SubsetWith and Without return new datasets and
never modify the receiver, so a dataset can be shared freely between
recursive calls.
*/
type Dataset struct {
	columns []string
	label   int
	rows    [][]feature.Value
}

/*
ValueCount pairs a value with the number of rows taking it on some column.
*/
type ValueCount struct {
	Value feature.Value
	Count int
}

/*
New takes a slice of column names, the name of the label column and a
slice of rows, and returns a dataset with them or an error if they do
not form a valid table:
  * there must be at least one column, none of them unnamed or repeated
  * the label must be one of the columns
  * every row must have exactly one value per column
  * all values in a column must be of the same kind

The given slices are copied.
*/
func New(columns []string, label string, rows [][]feature.Value) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]bool, len(columns))
	labelIndex := -1
	for i, c := range columns {
		if c == "" {
			return nil, zerr.With(zerr.Wrap(ErrEmptyColumnName, fmt.Sprintf("column %d", i+1)), "column", i+1)
		}
		if seen[c] {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateColumn, fmt.Sprintf("column %q", c)), "column", c)
		}
		seen[c] = true
		if c == label {
			labelIndex = i
		}
	}
	if labelIndex < 0 {
		return nil, zerr.With(zerr.Wrap(ErrMissingLabel, fmt.Sprintf("label %q", label)), "label", label)
	}
	kinds := make([]feature.Kind, len(columns))
	copied := make([][]feature.Value, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, zerr.With(zerr.Wrap(ErrRaggedRow, fmt.Sprintf("row %d has %d values for %d columns", i+1, len(row), len(columns))), "row", i+1)
		}
		for j, v := range row {
			if i == 0 {
				kinds[j] = v.Kind()
				continue
			}
			if v.Kind() != kinds[j] {
				return nil, zerr.With(zerr.Wrap(ErrMixedKinds, fmt.Sprintf("column %q has %v and %v values (row %d)", columns[j], kinds[j], v.Kind(), i+1)), "column", columns[j])
			}
		}
		copied = append(copied, append([]feature.Value(nil), row...))
	}
	return &Dataset{
		columns: append([]string(nil), columns...),
		label:   labelIndex,
		rows:    copied,
	}, nil
}

// Columns returns the names of all the columns, label included, in order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// Label returns the name of the label column.
func (d *Dataset) Label() string {
	return d.columns[d.label]
}

/*
Attributes returns the names of the columns that can be split on, that
is every column but the label, in column order.
*/
func (d *Dataset) Attributes() []string {
	attributes := make([]string, 0, len(d.columns)-1)
	for i, c := range d.columns {
		if i != d.label {
			attributes = append(attributes, c)
		}
	}
	return attributes
}

// Count returns the number of rows in the dataset.
func (d *Dataset) Count() int {
	return len(d.rows)
}

/*
Record returns the i-th row as a map of column names to values.
It panics if i is out of range.
*/
func (d *Dataset) Record(i int) map[string]feature.Value {
	r := make(map[string]feature.Value, len(d.columns))
	for j, c := range d.columns {
		r[c] = d.rows[i][j]
	}
	return r
}

/*
Values returns the distinct values taken on the given column, in the
order they first appear in the rows.
*/
func (d *Dataset) Values(column string) ([]feature.Value, error) {
	counts, err := d.CountValues(column)
	if err != nil {
		return nil, err
	}
	values := make([]feature.Value, 0, len(counts))
	for _, vc := range counts {
		values = append(values, vc.Value)
	}
	return values, nil
}

/*
CountValues returns, for every distinct value taken on the given column,
the number of rows taking it. Values are listed in the order they first
appear in the rows, so only values actually observed are ever counted.
*/
func (d *Dataset) CountValues(column string) ([]ValueCount, error) {
	j, err := d.index(column)
	if err != nil {
		return nil, err
	}
	return d.countValues(j), nil
}

/*
LabelCounts returns CountValues for the label column.
*/
func (d *Dataset) LabelCounts() []ValueCount {
	return d.countValues(d.label)
}

func (d *Dataset) countValues(j int) []ValueCount {
	var result []ValueCount
	positions := make(map[feature.Value]int)
	for _, row := range d.rows {
		v := row[j]
		p, ok := positions[v]
		if !ok {
			positions[v] = len(result)
			result = append(result, ValueCount{v, 1})
			continue
		}
		result[p].Count++
	}
	return result
}

/*
Entropy returns the entropy of the label column in bits: a measure of
the disinformation we have on the labels of the samples in the dataset.
It is 0 for a dataset whose rows all share one label and log2(k) when k
labels are equally frequent. An empty dataset has entropy 0.
*/
func (d *Dataset) Entropy() float64 {
	var result float64
	total := float64(len(d.rows))
	for _, vc := range d.LabelCounts() {
		p := float64(vc.Count) / total
		result -= p * math.Log2(p)
	}
	return result
}

/*
SubsetWith takes a criterion and returns the dataset of the rows that
satisfy it, keeping all columns.
*/
func (d *Dataset) SubsetWith(c feature.Criterion) (*Dataset, error) {
	j, err := d.index(c.Feature())
	if err != nil {
		return nil, err
	}
	var rows [][]feature.Value
	for _, row := range d.rows {
		if c.SatisfiedBy(row[j]) {
			rows = append(rows, row)
		}
	}
	return &Dataset{d.columns, d.label, rows}, nil
}

/*
Without returns the dataset with the given column removed from every row.
The label column cannot be removed.
*/
func (d *Dataset) Without(column string) (*Dataset, error) {
	j, err := d.index(column)
	if err != nil {
		return nil, err
	}
	if j == d.label {
		return nil, zerr.With(zerr.Wrap(ErrDropLabel, fmt.Sprintf("removing %q", column)), "column", column)
	}
	columns := make([]string, 0, len(d.columns)-1)
	columns = append(append(columns, d.columns[:j]...), d.columns[j+1:]...)
	rows := make([][]feature.Value, 0, len(d.rows))
	for _, row := range d.rows {
		r := make([]feature.Value, 0, len(row)-1)
		rows = append(rows, append(append(r, row[:j]...), row[j+1:]...))
	}
	label := d.label
	if j < label {
		label--
	}
	return &Dataset{columns, label, rows}, nil
}

func (d *Dataset) index(column string) (int, error) {
	for j, c := range d.columns {
		if c == column {
			return j, nil
		}
	}
	return -1, zerr.With(zerr.Wrap(ErrUnknownColumn, fmt.Sprintf("column %q", column)), "column", column)
}

func (d *Dataset) String() string {
	return fmt.Sprintf("[%d rows: %s -> %s]", len(d.rows), strings.Join(d.Attributes(), ", "), d.Label())
}
