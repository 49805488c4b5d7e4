package bio_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/id3/bio"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherCSV = `Weather, Wind ,Play
Sunny,Weak,Yes
 Sunny ,Strong,Yes
Rainy,Weak,No
`

func TestReadCSVDataset(t *testing.T) {
	ds, err := bio.ReadCSVDataset(strings.NewReader(weatherCSV), nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Weather", "Wind", "Play"}, ds.Columns())
	assert.Equal(t, "Play", ds.Label())
	assert.Equal(t, 3, ds.Count())
	assert.Equal(t, map[string]feature.Value{
		"Weather": feature.StringValue("Sunny"),
		"Wind":    feature.StringValue("Strong"),
		"Play":    feature.StringValue("Yes"),
	}, ds.Record(1))
}

func TestReadCSVDatasetLabel(t *testing.T) {
	ds, err := bio.ReadCSVDataset(strings.NewReader(weatherCSV), nil, "Wind")
	require.NoError(t, err)
	assert.Equal(t, "Wind", ds.Label())

	_, err = bio.ReadCSVDataset(strings.NewReader(weatherCSV), nil, "Temperature")
	assert.ErrorIs(t, err, dataset.ErrMissingLabel)
}

func TestReadCSVDatasetNormalizesText(t *testing.T) {
	in := "Place,Visit\nCafe\u0301,yes\nCaf\u00e9,no\n"
	ds, err := bio.ReadCSVDataset(strings.NewReader(in), nil, "")
	require.NoError(t, err)
	values, err := ds.Values("Place")
	require.NoError(t, err)
	assert.Equal(t, []feature.Value{feature.StringValue("Caf\u00e9")}, values)
}

func TestReadCSVDatasetWithFeatures(t *testing.T) {
	features := []*feature.Feature{
		feature.New("Rank", feature.IntKind, nil),
		feature.New("Windy", feature.BoolKind, nil),
		feature.NewDiscreteFeature("Play", []string{"Yes", "No"}),
	}
	in := "Rank,Windy,Play\n1,true,Yes\n 2,false,No\n"
	ds, err := bio.ReadCSVDataset(strings.NewReader(in), features, "Play")
	require.NoError(t, err)
	assert.Equal(t, map[string]feature.Value{
		"Rank":  feature.IntValue(2),
		"Windy": feature.BoolValue(false),
		"Play":  feature.StringValue("No"),
	}, ds.Record(1))
}

func TestReadCSVDatasetErrors(t *testing.T) {
	features := []*feature.Feature{
		feature.New("Rank", feature.IntKind, nil),
		feature.NewDiscreteFeature("Play", []string{"Yes", "No"}),
	}
	tests := []struct {
		name     string
		in       string
		features []*feature.Feature
		wantErr  error
		wantMsg  string
	}{
		{"unknown value", "Rank,Play\n1,Maybe\n", features, feature.ErrValueNotAvailable, "parsing line 2"},
		{"not an int", "Rank,Play\n1,Yes\none,No\n", features, feature.ErrInvalidValue, "parsing line 3"},
		{"undeclared column", "Rank,Wind,Play\n1,Weak,Yes\n", features, bio.ErrUnknownFeature, "Wind"},
		{"missing value", "Weather,Play\nSunny,Yes\n?,No\n", nil, feature.ErrMissingValue, "parsing line 3"},
		{"empty cell", "Weather,Play\n ,Yes\n", nil, feature.ErrMissingValue, "parsing line 2"},
		{"duplicate column", "Play,Play\nYes,No\n", nil, dataset.ErrDuplicateColumn, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bio.ReadCSVDataset(strings.NewReader(tt.in), tt.features, "")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestReadCSVDatasetRaggedLine(t *testing.T) {
	_, err := bio.ReadCSVDataset(strings.NewReader("A,Play\nx,Yes,extra\n"), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading body")
}

func TestReadCSVDatasetFromFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.csv")
	require.NoError(t, os.WriteFile(path, []byte(weatherCSV), 0o600))
	ds, err := bio.ReadCSVDatasetFromFilePath(path, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Count())

	_, err = bio.ReadCSVDatasetFromFilePath(filepath.Join(t.TempDir(), "missing.csv"), nil, "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
