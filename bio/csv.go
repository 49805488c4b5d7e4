package bio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"go.trai.ch/zerr"
	"golang.org/x/text/unicode/norm"
)

/*
ReadCSVDataset takes an io.Reader for a CSV stream, a slice of features and
the name of the label column and returns the dataset parsed from the reader
or an error.

The header or first row of the CSV content is expected to consist of the
names of the columns. When no features are given, every column is taken as
a string feature with any value. Otherwise every column must be one of the
given features and its values are parsed according to it. When the label is
empty, the last column is the label.

Cells are trimmed and normalized to Unicode NFC, so that equal text typed
differently yields equal values. Empty cells and the '?' placeholder are
rejected, as missing values are not supported.
*/
func ReadCSVDataset(reader io.Reader, features []*feature.Feature, label string) (*dataset.Dataset, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, zerr.Wrap(err, "reading header")
	}
	for i, name := range header {
		header[i] = normalize(name)
	}
	columnFeatures, err := parseFeaturesFromCSVHeader(header, features)
	if err != nil {
		return nil, err
	}
	var rows [][]feature.Value
	for l := 2; ; l++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, zerr.Wrap(err, "reading body")
		}
		values, err := parseRowFromCSV(row, columnFeatures)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, fmt.Sprintf("parsing line %d", l)), "line", l)
		}
		rows = append(rows, values)
	}
	return dataset.New(header, LabelOrLast(label, header), rows)
}

/*
ReadCSVDatasetFromFilePath takes a filepath string, a slice of features and
a label name, opens the file to which the filepath points to and uses
ReadCSVDataset to return the dataset read from it or an error. An empty
filepath or "-" reads from the standard input.
*/
func ReadCSVDatasetFromFilePath(filepath string, features []*feature.Feature, label string) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" || filepath == "-" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, zerr.Wrap(err, "reading training set")
		}
		defer f.Close()
	}
	ds, err := ReadCSVDataset(f, features, label)
	if err != nil {
		return nil, zerr.Wrap(err, fmt.Sprintf("parsing CSV file %s", filepath))
	}
	return ds, nil
}

func parseFeaturesFromCSVHeader(header []string, features []*feature.Feature) ([]*feature.Feature, error) {
	featuresByName := FeaturesByName(features)
	columnFeatures := make([]*feature.Feature, 0, len(header))
	for _, name := range header {
		f, ok := featuresByName[name]
		if !ok {
			if len(features) > 0 {
				return nil, zerr.With(zerr.Wrap(ErrUnknownFeature, fmt.Sprintf("parsing header: column %q", name)), "feature", name)
			}
			f = feature.New(name, feature.StringKind, nil)
		}
		columnFeatures = append(columnFeatures, f)
	}
	return columnFeatures, nil
}

func parseRowFromCSV(row []string, columnFeatures []*feature.Feature) ([]feature.Value, error) {
	values := make([]feature.Value, 0, len(columnFeatures))
	for i, f := range columnFeatures {
		raw := normalize(row[i])
		if raw == "" || raw == "?" {
			return nil, zerr.With(zerr.Wrap(feature.ErrMissingValue, fmt.Sprintf("feature %s", f.Name())), "feature", f.Name())
		}
		v, err := f.Parse(raw)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
