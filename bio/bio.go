/*
Package bio reads the datasets trees are grown from and the metadata
describing their features.
*/
package bio

import (
	"github.com/pbanos/id3/feature"
	"go.trai.ch/zerr"
)

var (
	// ErrNoFeatures is returned when metadata declares no features.
	ErrNoFeatures = zerr.New("metadata has no feature information")

	// ErrInvalidFeatureDeclaration is returned for a metadata feature whose
	// declaration is neither a kind name nor a list of values.
	ErrInvalidFeatureDeclaration = zerr.New("invalid feature declaration")

	// ErrUnknownFeature is returned when data refers to a column that the
	// given features do not describe.
	ErrUnknownFeature = zerr.New("reference to unknown feature")
)

/*
LabelOrLast returns the given label unless it is empty, in which case
it returns the last of the given columns.
*/
func LabelOrLast(label string, columns []string) string {
	if label == "" && len(columns) > 0 {
		return columns[len(columns)-1]
	}
	return label
}

/*
FeaturesByName takes a slice of features and returns them in a map
indexed by their names.
*/
func FeaturesByName(features []*feature.Feature) map[string]*feature.Feature {
	result := make(map[string]*feature.Feature, len(features))
	for _, f := range features {
		result[f.Name()] = f
	}
	return result
}
