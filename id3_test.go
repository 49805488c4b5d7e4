package id3_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func s(v string) feature.Value { return feature.StringValue(v) }

func table(t *testing.T, columns []string, label string, rows ...[]string) *dataset.Dataset {
	t.Helper()
	values := make([][]feature.Value, 0, len(rows))
	for _, row := range rows {
		r := make([]feature.Value, 0, len(row))
		for _, v := range row {
			r = append(r, s(v))
		}
		values = append(values, r)
	}
	ds, err := dataset.New(columns, label, values)
	require.NoError(t, err)
	return ds
}

func playTennis(t *testing.T) *dataset.Dataset {
	return table(t, []string{"Outlook", "Temperature", "Humidity", "Wind", "Play"}, "Play",
		[]string{"Sunny", "Hot", "High", "Weak", "No"},
		[]string{"Sunny", "Hot", "High", "Strong", "No"},
		[]string{"Overcast", "Hot", "High", "Weak", "Yes"},
		[]string{"Rain", "Mild", "High", "Weak", "Yes"},
		[]string{"Rain", "Cool", "Normal", "Weak", "Yes"},
		[]string{"Rain", "Cool", "Normal", "Strong", "No"},
		[]string{"Overcast", "Cool", "Normal", "Strong", "Yes"},
		[]string{"Sunny", "Mild", "High", "Weak", "No"},
		[]string{"Sunny", "Cool", "Normal", "Weak", "Yes"},
		[]string{"Rain", "Mild", "Normal", "Weak", "Yes"},
		[]string{"Sunny", "Mild", "Normal", "Strong", "Yes"},
		[]string{"Overcast", "Mild", "High", "Strong", "Yes"},
		[]string{"Overcast", "Hot", "Normal", "Weak", "Yes"},
		[]string{"Rain", "Mild", "High", "Strong", "No"},
	)
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func leaf(v feature.Value, n int) *tree.Leaf { return &tree.Leaf{Value: v, Samples: n} }

func TestGrowTwoValues(t *testing.T) {
	ds := table(t, []string{"Weather", "Play"}, "Play",
		[]string{"Sunny", "Yes"},
		[]string{"Sunny", "Yes"},
		[]string{"Rainy", "No"},
		[]string{"Rainy", "No"},
	)
	got, err := id3.Grow(ds)
	require.NoError(t, err)
	want := tree.New("Play", &tree.Internal{
		Feature:         "Weather",
		Samples:         4,
		InformationGain: 1,
		Branches: []tree.Branch{
			{Value: s("Sunny"), Node: leaf(s("Yes"), 2)},
			{Value: s("Rainy"), Node: leaf(s("No"), 2)},
		},
	})
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Grow() mismatch (-want +got):\n%s", diff)
	}
	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Weather":{"Sunny":"Yes","Rainy":"No"}}`, string(b))
}

func TestGrowPureLabel(t *testing.T) {
	ds := table(t, []string{"Weather", "Wind", "Play"}, "Play",
		[]string{"Sunny", "Weak", "Yes"},
		[]string{"Rainy", "Strong", "Yes"},
		[]string{"Cloudy", "Weak", "Yes"},
	)
	got, err := id3.Grow(ds)
	require.NoError(t, err)
	assert.Equal(t, tree.New("Play", leaf(s("Yes"), 3)), got)
}

func TestGrowMixedPartitionTakesFirstLabel(t *testing.T) {
	ds, err := dataset.New([]string{"A", "Label"}, "Label", [][]feature.Value{
		{s("x"), feature.IntValue(1)},
		{s("x"), feature.IntValue(0)},
		{s("y"), feature.IntValue(1)},
	})
	require.NoError(t, err)

	a, err := id3.BestAttribute(ds)
	require.NoError(t, err)
	assert.Equal(t, "A", a)

	got, err := id3.Grow(ds)
	require.NoError(t, err)
	want := tree.New("Label", &tree.Internal{
		Feature:         "A",
		Samples:         3,
		InformationGain: ds.Entropy() - 2.0/3.0,
		Branches: []tree.Branch{
			{Value: s("x"), Node: leaf(feature.IntValue(1), 2)},
			{Value: s("y"), Node: leaf(feature.IntValue(1), 1)},
		},
	})
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("Grow() mismatch (-want +got):\n%s", diff)
	}
}

func TestGrowPlayTennis(t *testing.T) {
	got, err := id3.Grow(playTennis(t))
	require.NoError(t, err)
	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t,
		`{"Outlook":{"Sunny":{"Humidity":{"High":"No","Normal":"Yes"}},"Overcast":"Yes","Rain":{"Wind":{"Weak":"Yes","Strong":"No"}}}}`,
		string(b))
	assert.Equal(t, 2, got.Depth())
	assert.Equal(t, 5, got.LeafCount())
	assert.Equal(t, 14, got.Root.Weight())
}

func TestGrowWithoutAttributesTakesMode(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{"majority", []string{"Yes", "No", "No"}, "No"},
		{"tie first seen", []string{"No", "Yes"}, "No"},
		{"tie first seen reversed", []string{"Yes", "No", "No", "Yes"}, "Yes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]string, 0, len(tt.labels))
			for _, l := range tt.labels {
				rows = append(rows, []string{l})
			}
			got, err := id3.Grow(table(t, []string{"Play"}, "Play", rows...))
			require.NoError(t, err)
			assert.Equal(t, tree.New("Play", leaf(s(tt.want), len(tt.labels))), got)
		})
	}
}

func TestGrowExhaustedAttributesTakesMode(t *testing.T) {
	ds := table(t, []string{"Weather", "Play"}, "Play",
		[]string{"Sunny", "No"},
		[]string{"Sunny", "Yes"},
		[]string{"Sunny", "Yes"},
		[]string{"Rainy", "No"},
	)
	got, err := id3.Grow(ds)
	require.NoError(t, err)
	root := got.Root.(*tree.Internal)
	sunny, ok := root.Child(s("Sunny"))
	require.True(t, ok)
	assert.Equal(t, leaf(s("Yes"), 3), sunny)
}

func TestBestAttributeTieTakesFirstColumn(t *testing.T) {
	ds := table(t, []string{"B", "A", "Play"}, "Play",
		[]string{"b1", "a1", "Yes"},
		[]string{"b2", "a2", "No"},
		[]string{"b1", "a1", "Yes"},
		[]string{"b2", "a2", "No"},
	)
	a, err := id3.BestAttribute(ds)
	require.NoError(t, err)
	assert.Equal(t, "B", a)

	ds = table(t, []string{"A", "B", "Play"}, "Play",
		[]string{"a1", "b1", "Yes"},
		[]string{"a2", "b2", "No"},
		[]string{"a1", "b1", "Yes"},
		[]string{"a2", "b2", "No"},
	)
	a, err = id3.BestAttribute(ds)
	require.NoError(t, err)
	assert.Equal(t, "A", a)
}

func TestBestAttributeUninformative(t *testing.T) {
	ds := table(t, []string{"Same", "Other", "Play"}, "Play",
		[]string{"x", "p", "Yes"},
		[]string{"x", "q", "No"},
		[]string{"x", "p", "No"},
		[]string{"x", "q", "Yes"},
	)
	a, err := id3.BestAttribute(ds)
	require.NoError(t, err)
	assert.Equal(t, "Same", a)
}

func TestInformationGain(t *testing.T) {
	ds := playTennis(t)
	want := map[string]float64{
		"Outlook":     0.246750,
		"Temperature": 0.029223,
		"Humidity":    0.151836,
		"Wind":        0.048127,
	}
	for _, a := range ds.Attributes() {
		gain, err := id3.InformationGain(ds, a)
		require.NoError(t, err)
		assert.InDelta(t, want[a], gain, 1e-5, a)
		assert.GreaterOrEqual(t, gain, 0.0)
		assert.LessOrEqual(t, gain, ds.Entropy())
	}
	a, err := id3.BestAttribute(ds)
	require.NoError(t, err)
	assert.Equal(t, "Outlook", a)
}

func TestNewPartition(t *testing.T) {
	p, err := id3.NewPartition(playTennis(t), "Outlook")
	require.NoError(t, err)
	assert.Equal(t, "Outlook", p.Feature)
	require.Len(t, p.Parts, 3)
	var values []feature.Value
	var counts []int
	for _, part := range p.Parts {
		values = append(values, part.Value)
		counts = append(counts, part.Dataset.Count())
		assert.Equal(t, []string{"Temperature", "Humidity", "Wind", "Play"}, part.Dataset.Columns())
		assert.Equal(t, "Play", part.Dataset.Label())
	}
	assert.Equal(t, []feature.Value{s("Sunny"), s("Overcast"), s("Rain")}, values)
	assert.Equal(t, []int{5, 4, 5}, counts)
	assert.InDelta(t, 0.246750, p.InformationGain(), 1e-5)
}

func TestEveryRowReachesOneMatchingLeaf(t *testing.T) {
	ds := playTennis(t)
	got, err := id3.Grow(ds)
	require.NoError(t, err)
	for i := 0; i < ds.Count(); i++ {
		record := ds.Record(i)
		var n tree.Node = got.Root
		for {
			in, ok := n.(*tree.Internal)
			if !ok {
				break
			}
			child, ok := in.Child(record[in.Feature])
			require.True(t, ok, "row %d has no branch at %s", i, in.Feature)
			n = child
		}
		l := n.(*tree.Leaf)
		assert.Equal(t, record["Play"], l.Value, "row %d", i)
	}
}

func TestNoPathRepeatsAttribute(t *testing.T) {
	got, err := id3.Grow(playTennis(t))
	require.NoError(t, err)
	var leaves int
	err = got.Traverse(false, func(path []feature.Criterion, n tree.Node) error {
		seen := map[string]bool{}
		for _, c := range path {
			assert.False(t, seen[c.Feature()], "feature %s repeated on path %v", c.Feature(), path)
			seen[c.Feature()] = true
		}
		if in, ok := n.(*tree.Internal); ok {
			assert.False(t, seen[in.Feature], "feature %s tested again", in.Feature)
		} else {
			leaves++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, leaves)
	assert.LessOrEqual(t, got.Depth(), 4)
}

func TestLeafWeightsAddUp(t *testing.T) {
	got, err := id3.Grow(playTennis(t))
	require.NoError(t, err)
	err = got.Traverse(true, func(_ []feature.Criterion, n tree.Node) error {
		in, ok := n.(*tree.Internal)
		if !ok {
			return nil
		}
		var sum int
		for _, b := range in.Branches {
			sum += b.Node.Weight()
		}
		assert.Equal(t, in.Weight(), sum, in.Feature)
		return nil
	})
	require.NoError(t, err)
}

func TestErrors(t *testing.T) {
	_, err := id3.Grow(nil)
	assert.ErrorIs(t, err, id3.ErrNilDataset)

	empty, err := dataset.New([]string{"A", "Play"}, "Play", nil)
	require.NoError(t, err)
	_, err = id3.Grow(empty)
	assert.ErrorIs(t, err, id3.ErrEmptyDataset)

	labelOnly := table(t, []string{"Play"}, "Play", []string{"Yes"})
	_, err = id3.BestAttribute(labelOnly)
	assert.ErrorIs(t, err, id3.ErrNoAttributes)

	_, err = id3.NewPartition(playTennis(t), "Play")
	assert.ErrorIs(t, err, dataset.ErrDropLabel)

	_, err = id3.InformationGain(playTennis(t), "Humidty")
	assert.ErrorIs(t, err, dataset.ErrUnknownColumn)
}
