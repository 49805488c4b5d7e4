package id3

import (
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"go.trai.ch/zerr"
)

// gainTolerance is the difference under which two information gains
// are considered equal.
const gainTolerance = 1e-12

/*
Partition represents a partition of a dataset according to an attribute
into parts with an information gain to predict the label
*/
type Partition struct {
	Feature         string
	Parts           []Part
	informationGain float64
}

/*
Part is the subset of a partitioned dataset whose rows take a given value
on the partition attribute, with that attribute column removed.
*/
type Part struct {
	Value   feature.Value
	Dataset *dataset.Dataset
}

/*
NewPartition takes a dataset and the name of one of its attribute columns
and returns the partition of the dataset by the values the attribute takes,
in the order they first appear in the rows, or an error.
*/
func NewPartition(ds *dataset.Dataset, attribute string) (*Partition, error) {
	if attribute == ds.Label() {
		return nil, zerr.With(zerr.Wrap(dataset.ErrDropLabel, fmt.Sprintf("partitioning by %q", attribute)), "column", attribute)
	}
	values, err := ds.Values(attribute)
	if err != nil {
		return nil, err
	}
	informationGain := ds.Entropy()
	totalCount := float64(ds.Count())
	parts := make([]Part, 0, len(values))
	for _, value := range values {
		subset, err := ds.SubsetWith(feature.NewDiscreteCriterion(attribute, value))
		if err != nil {
			return nil, err
		}
		informationGain -= subset.Entropy() * float64(subset.Count()) / totalCount
		subset, err = subset.Without(attribute)
		if err != nil {
			return nil, err
		}
		parts = append(parts, Part{value, subset})
	}
	if informationGain < 0 {
		informationGain = 0
	}
	return &Partition{attribute, parts, informationGain}, nil
}

// InformationGain returns the reduction in entropy achieved by the partition.
func (p *Partition) InformationGain() float64 {
	return p.informationGain
}

/*
InformationGain takes a dataset and the name of one of its attribute
columns and returns the information gain of partitioning the dataset by it:
its entropy minus the weighted entropies of the parts.
*/
func InformationGain(ds *dataset.Dataset, attribute string) (float64, error) {
	p, err := NewPartition(ds, attribute)
	if err != nil {
		return 0, err
	}
	return p.informationGain, nil
}

/*
BestPartition evaluates the partitions of the dataset by each of its
attributes, in column order, and returns the one with the maximum
information gain. When several attributes achieve it the first one
wins. It returns ErrNoAttributes for a dataset with only a label column.
*/
func BestPartition(ds *dataset.Dataset) (*Partition, error) {
	var selectedPartition *Partition
	for _, a := range ds.Attributes() {
		p, err := NewPartition(ds, a)
		if err != nil {
			return nil, err
		}
		if selectedPartition == nil || p.informationGain > selectedPartition.informationGain+gainTolerance {
			selectedPartition = p
		}
	}
	if selectedPartition == nil {
		return nil, ErrNoAttributes
	}
	return selectedPartition, nil
}

// BestAttribute returns the attribute of the partition chosen by BestPartition.
func BestAttribute(ds *dataset.Dataset) (string, error) {
	p, err := BestPartition(ds)
	if err != nil {
		return "", err
	}
	return p.Feature, nil
}
