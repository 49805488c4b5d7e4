package feature_test

import (
	"testing"

	"github.com/pbanos/id3/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureValid(t *testing.T) {
	f := feature.NewDiscreteFeature("Weather", []string{"Sunny", "Rainy"})

	ok, err := f.Valid(feature.StringValue("Sunny"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Valid(feature.StringValue("Snowy"))
	require.ErrorIs(t, err, feature.ErrValueNotAvailable)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "Snowy")

	ok, err = f.Valid(feature.IntValue(1))
	require.ErrorIs(t, err, feature.ErrInvalidValue)
	assert.False(t, ok)
}

func TestFeatureOpenDomain(t *testing.T) {
	f := feature.New("Rank", feature.IntKind, nil)
	assert.Empty(t, f.AvailableValues())

	v, err := f.Parse("3")
	require.NoError(t, err)
	assert.Equal(t, feature.IntValue(3), v)

	_, err = f.Parse("third")
	require.ErrorIs(t, err, feature.ErrInvalidValue)
	assert.Contains(t, err.Error(), "feature Rank")
}

func TestFeatureConvert(t *testing.T) {
	f := feature.New("Windy", feature.BoolKind, []feature.Value{feature.BoolValue(true), feature.BoolValue(false)})

	v, err := f.Convert(int64(0))
	require.NoError(t, err)
	assert.Equal(t, feature.BoolValue(false), v)

	_, err = f.Convert("nope")
	require.ErrorIs(t, err, feature.ErrInvalidValue)
}

func TestFeatureString(t *testing.T) {
	assert.Equal(t, "Weather (string: Sunny, Rainy)", feature.NewDiscreteFeature("Weather", []string{"Sunny", "Rainy"}).String())
	assert.Equal(t, "Rank (int)", feature.New("Rank", feature.IntKind, nil).String())
}

func TestCriterion(t *testing.T) {
	c := feature.NewDiscreteCriterion("Weather", feature.StringValue("Sunny"))
	assert.Equal(t, "Weather", c.Feature())
	assert.Equal(t, feature.StringValue("Sunny"), c.Value())
	assert.True(t, c.SatisfiedBy(feature.StringValue("Sunny")))
	assert.False(t, c.SatisfiedBy(feature.StringValue("Rainy")))
	assert.Equal(t, "Weather is Sunny", c.String())
}
